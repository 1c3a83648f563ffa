package database

import (
	"context"

	"github.com/google/uuid"
)

type Querier interface {
	AddJobCourse(ctx context.Context, arg AddJobCourseParams) error
	AddMember(ctx context.Context, arg AddMemberParams) (int64, error)
	AddUserSkill(ctx context.Context, arg AddUserSkillParams) error
	CountCoursesByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	CreateApplication(ctx context.Context, arg CreateApplicationParams) (Application, error)
	CreateBookmark(ctx context.Context, arg CreateBookmarkParams) (int64, error)
	CreateComment(ctx context.Context, arg CreateCommentParams) (Comment, error)
	CreateCourse(ctx context.Context, arg CreateCourseParams) (Course, error)
	CreateEnrollment(ctx context.Context, arg CreateEnrollmentParams) (int64, error)
	CreateFaculty(ctx context.Context, arg CreateFacultyParams) (Faculty, error)
	CreateFollow(ctx context.Context, arg CreateFollowParams) (Follow, error)
	CreateFollowRequest(ctx context.Context, arg CreateFollowRequestParams) (FollowRequest, error)
	CreateJob(ctx context.Context, arg CreateJobParams) (Job, error)
	CreateNotification(ctx context.Context, arg CreateNotificationParams) (Notification, error)
	CreateOrganization(ctx context.Context, arg CreateOrganizationParams) (Organization, error)
	CreatePost(ctx context.Context, arg CreatePostParams) (Post, error)
	CreateResearch(ctx context.Context, arg CreateResearchParams) (Research, error)
	CreateSchool(ctx context.Context, arg CreateSchoolParams) (School, error)
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	DeleteBookmark(ctx context.Context, arg DeleteBookmarkParams) (int64, error)
	DeleteEnrollment(ctx context.Context, arg DeleteEnrollmentParams) (int64, error)
	DeleteFollow(ctx context.Context, arg DeleteFollowParams) (int64, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
	DeletePendingFollowRequest(ctx context.Context, arg DeletePendingFollowRequestParams) (int64, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	DeleteUserSkills(ctx context.Context, userID uuid.UUID) error
	GetApplication(ctx context.Context, id uuid.UUID) (Application, error)
	GetCourse(ctx context.Context, id uuid.UUID) (Course, error)
	GetFollowRequest(ctx context.Context, id uuid.UUID) (FollowRequest, error)
	GetJob(ctx context.Context, id uuid.UUID) (Job, error)
	GetJobLikes(ctx context.Context, arg GetJobLikesParams) (GetJobLikesRow, error)
	GetOrganization(ctx context.Context, id uuid.UUID) (Organization, error)
	GetPost(ctx context.Context, arg GetPostParams) (PostRow, error)
	GetSchool(ctx context.Context, id uuid.UUID) (School, error)
	GetScreeningTarget(ctx context.Context, applicationID uuid.UUID) (ScreeningTarget, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	IsFollowing(ctx context.Context, arg IsFollowingParams) (bool, error)
	LikeJob(ctx context.Context, arg LikeJobParams) (int64, error)
	LikePost(ctx context.Context, arg LikePostParams) (int64, error)
	ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]Application, error)
	ListApplicationsByStudent(ctx context.Context, studentID uuid.UUID) ([]Application, error)
	ListBookmarkedPosts(ctx context.Context, arg ListBookmarkedPostsParams) ([]PostRow, error)
	ListComments(ctx context.Context, arg ListCommentsParams) ([]Comment, error)
	ListCourses(ctx context.Context, arg ListCoursesParams) ([]Course, error)
	ListEnrolledCourseIDs(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error)
	ListFaculties(ctx context.Context, schoolID uuid.UUID) ([]Faculty, error)
	ListFollowers(ctx context.Context, arg ListFollowersParams) ([]FollowUserRow, error)
	ListFollowing(ctx context.Context, arg ListFollowingParams) ([]FollowUserRow, error)
	ListJobCourses(ctx context.Context, jobIDs []uuid.UUID) ([]JobCourse, error)
	ListJobs(ctx context.Context, arg ListJobsParams) ([]Job, error)
	ListMembers(ctx context.Context, organizationID uuid.UUID) ([]MemberRow, error)
	ListNotifications(ctx context.Context, arg ListNotificationsParams) ([]Notification, error)
	ListOrganizations(ctx context.Context, arg ListOrganizationsParams) ([]Organization, error)
	ListPendingFollowRequests(ctx context.Context, targetID uuid.UUID) ([]FollowRequest, error)
	ListPosts(ctx context.Context, arg ListPostsParams) ([]PostRow, error)
	ListResearches(ctx context.Context, arg ListResearchesParams) ([]Research, error)
	ListSchools(ctx context.Context) ([]School, error)
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]string, error)
	MarkAllNotificationsRead(ctx context.Context, recipientID uuid.UUID) error
	MarkNotificationRead(ctx context.Context, arg MarkNotificationReadParams) (int64, error)
	RemoveMember(ctx context.Context, arg RemoveMemberParams) (int64, error)
	SaveScreeningResult(ctx context.Context, arg SaveScreeningResultParams) error
	SetApplicationResume(ctx context.Context, arg SetApplicationResumeParams) error
	UnlikeJob(ctx context.Context, arg UnlikeJobParams) (int64, error)
	UnlikePost(ctx context.Context, arg UnlikePostParams) (int64, error)
	UpdateApplicationStatus(ctx context.Context, arg UpdateApplicationStatusParams) (Application, error)
	UpdateFollowRequestStatus(ctx context.Context, arg UpdateFollowRequestStatusParams) error
	UpdateScreeningStatus(ctx context.Context, arg UpdateScreeningStatusParams) error
}

var _ Querier = (*Queries)(nil)
