package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/atcampus/internal/auth"
	"github.com/muhammadolammi/atcampus/internal/database"
	"github.com/muhammadolammi/atcampus/internal/events"
)

var (
	errDuplicate  = &pq.Error{Code: "23505"}
	errMissingRef = &pq.Error{Code: "23503"}
)

// fakeStore keeps just enough state in memory for the handlers under test.
// Methods it does not override panic through the nil embedded Querier.
type fakeStore struct {
	database.Querier

	mu            sync.Mutex
	clock         time.Time
	users         map[uuid.UUID]database.User
	skills        map[uuid.UUID][]string
	enrollments   map[uuid.UUID][]uuid.UUID
	follows       []database.Follow
	requests      map[uuid.UUID]database.FollowRequest
	notifications []database.Notification
	posts         []database.Post
	postLikes     map[[2]uuid.UUID]bool
	jobs          []database.Job
	jobCourses    []database.JobCourse
	courses       map[uuid.UUID]database.Course
	applications  []database.Application
	orgs          map[uuid.UUID]database.Organization
	members       map[[2]uuid.UUID]string
	bookmarks     map[[2]uuid.UUID]bool
	comments      []database.Comment
	jobLikes      map[[2]uuid.UUID]bool
	schools       map[uuid.UUID]database.School
	faculties     []database.Faculty
	researches    []database.Research
	txCount       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clock:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		users:       map[uuid.UUID]database.User{},
		skills:      map[uuid.UUID][]string{},
		enrollments: map[uuid.UUID][]uuid.UUID{},
		requests:    map[uuid.UUID]database.FollowRequest{},
		postLikes:   map[[2]uuid.UUID]bool{},
		courses:     map[uuid.UUID]database.Course{},
		orgs:        map[uuid.UUID]database.Organization{},
		members:     map[[2]uuid.UUID]string{},
		bookmarks:   map[[2]uuid.UUID]bool{},
		jobLikes:    map[[2]uuid.UUID]bool{},
		schools:     map[uuid.UUID]database.School{},
	}
}

func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *fakeStore) ExecTx(ctx context.Context, fn func(database.Querier) error) error {
	s.mu.Lock()
	s.txCount++
	s.mu.Unlock()
	return fn(s)
}

func (s *fakeStore) addUser(name, role string) database.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := database.User{
		ID:        uuid.New(),
		Email:     strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@campus.test",
		Name:      name,
		Role:      role,
		CreatedAt: s.tick(),
	}
	s.users[u.ID] = u
	return u
}

func (s *fakeStore) CreateUser(_ context.Context, arg database.CreateUserParams) (database.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == arg.Email {
			return database.User{}, errDuplicate
		}
	}
	u := database.User{
		ID:           uuid.New(),
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		Name:         arg.Name,
		Role:         arg.Role,
		CreatedAt:    s.tick(),
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *fakeStore) GetUserByID(_ context.Context, id uuid.UUID) (database.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return database.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (s *fakeStore) GetUserByEmail(_ context.Context, email string) (database.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return database.User{}, sql.ErrNoRows
}

func (s *fakeStore) ListUserSkills(_ context.Context, userID uuid.UUID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.skills[userID]...), nil
}

func (s *fakeStore) ListEnrolledCourseIDs(_ context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uuid.UUID(nil), s.enrollments[studentID]...), nil
}

func (s *fakeStore) IsFollowing(_ context.Context, arg database.IsFollowingParams) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.follows {
		if f.FollowerID == arg.FollowerID && f.FollowingID == arg.FollowingID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) CreateFollow(ctx context.Context, arg database.CreateFollowParams) (database.Follow, error) {
	if ok, _ := s.IsFollowing(ctx, database.IsFollowingParams(arg)); ok {
		return database.Follow{}, errDuplicate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f := database.Follow{ID: uuid.New(), FollowerID: arg.FollowerID, FollowingID: arg.FollowingID, CreatedAt: s.tick()}
	s.follows = append(s.follows, f)
	return f, nil
}

func (s *fakeStore) CreateFollowRequest(_ context.Context, arg database.CreateFollowRequestParams) (database.FollowRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		if r.RequesterID == arg.RequesterID && r.TargetID == arg.TargetID && r.Status == followRequestPending {
			return database.FollowRequest{}, errDuplicate
		}
	}
	r := database.FollowRequest{ID: uuid.New(), RequesterID: arg.RequesterID, TargetID: arg.TargetID, Status: followRequestPending, CreatedAt: s.tick()}
	s.requests[r.ID] = r
	return r, nil
}

func (s *fakeStore) GetFollowRequest(_ context.Context, id uuid.UUID) (database.FollowRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return database.FollowRequest{}, sql.ErrNoRows
	}
	return r, nil
}

func (s *fakeStore) UpdateFollowRequestStatus(_ context.Context, arg database.UpdateFollowRequestStatusParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.requests[arg.ID]
	r.Status = arg.Status
	s.requests[arg.ID] = r
	return nil
}

func (s *fakeStore) CreateNotification(_ context.Context, arg database.CreateNotificationParams) (database.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := database.Notification{
		ID:          uuid.New(),
		RecipientID: arg.RecipientID,
		ActorID:     arg.ActorID,
		Type:        arg.Type,
		EntityID:    arg.EntityID,
		Message:     arg.Message,
		CreatedAt:   s.tick(),
	}
	s.notifications = append(s.notifications, n)
	return n, nil
}

func (s *fakeStore) notificationsFor(recipient uuid.UUID) []database.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []database.Notification
	for _, n := range s.notifications {
		if n.RecipientID == recipient {
			out = append(out, n)
		}
	}
	return out
}

// newestFirst returns rows from the cursor row onwards, newest first, at most
// limit of them.
func newestFirst[T any](rows []T, created func(T) time.Time, id func(T) uuid.UUID, cursor uuid.NullUUID, limit int32) []T {
	sorted := append([]T(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool { return created(sorted[i]).After(created(sorted[j])) })
	start := 0
	if cursor.Valid {
		start = len(sorted)
		for i, r := range sorted {
			if id(r) == cursor.UUID {
				start = i
				break
			}
		}
	}
	sorted = sorted[start:]
	if int(limit) < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}

func (s *fakeStore) CreatePost(_ context.Context, arg database.CreatePostParams) (database.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := database.Post{ID: uuid.New(), AuthorID: arg.AuthorID, Content: arg.Content, ImageUrl: arg.ImageUrl, CreatedAt: s.tick()}
	s.posts = append(s.posts, p)
	return p, nil
}

func (s *fakeStore) postRow(p database.Post, viewer uuid.UUID) database.PostRow {
	var likes int64
	for key := range s.postLikes {
		if key[1] == p.ID {
			likes++
		}
	}
	return database.PostRow{
		ID:         p.ID,
		AuthorID:   p.AuthorID,
		AuthorName: s.users[p.AuthorID].Name,
		Content:    p.Content,
		ImageUrl:   p.ImageUrl,
		CreatedAt:  p.CreatedAt,
		LikeCount:  likes,
		Liked:      s.postLikes[[2]uuid.UUID{viewer, p.ID}],
		Bookmarked: s.bookmarks[[2]uuid.UUID{viewer, p.ID}],
	}
}

func (s *fakeStore) ListPosts(_ context.Context, arg database.ListPostsParams) ([]database.PostRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	page := newestFirst(s.posts, func(p database.Post) time.Time { return p.CreatedAt }, func(p database.Post) uuid.UUID { return p.ID }, arg.Cursor, arg.Limit)
	out := make([]database.PostRow, 0, len(page))
	for _, p := range page {
		out = append(out, s.postRow(p, arg.ViewerID))
	}
	return out, nil
}

func (s *fakeStore) GetPost(_ context.Context, arg database.GetPostParams) (database.PostRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == arg.ID {
			return s.postRow(p, arg.ViewerID), nil
		}
	}
	return database.PostRow{}, sql.ErrNoRows
}

func (s *fakeStore) DeletePost(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakeStore) LikePost(_ context.Context, arg database.LikePostParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]uuid.UUID{arg.UserID, arg.PostID}
	if s.postLikes[key] {
		return 0, nil
	}
	s.postLikes[key] = true
	return 1, nil
}

func (s *fakeStore) addJob(owner uuid.UUID, title string, skills []string, courses ...uuid.UUID) database.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	j := database.Job{ID: uuid.New(), OwnerID: owner, Title: title, Description: title + " role", RequiredSkills: skills, CreatedAt: s.tick()}
	s.jobs = append(s.jobs, j)
	for _, c := range courses {
		s.jobCourses = append(s.jobCourses, database.JobCourse{JobID: j.ID, CourseID: c})
	}
	return j
}

func (s *fakeStore) CreateJob(_ context.Context, arg database.CreateJobParams) (database.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j := database.Job{
		ID:             uuid.New(),
		OwnerID:        arg.OwnerID,
		Title:          arg.Title,
		Description:    arg.Description,
		Location:       arg.Location,
		RequiredSkills: arg.RequiredSkills,
		CreatedAt:      s.tick(),
	}
	s.jobs = append(s.jobs, j)
	return j, nil
}

func (s *fakeStore) AddJobCourse(_ context.Context, arg database.AddJobCourseParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobCourses = append(s.jobCourses, database.JobCourse(arg))
	return nil
}

func (s *fakeStore) CountCoursesByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := s.courses[id]; ok {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) GetJob(_ context.Context, id uuid.UUID) (database.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return database.Job{}, sql.ErrNoRows
}

func (s *fakeStore) ListJobs(_ context.Context, arg database.ListJobsParams) ([]database.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newestFirst(s.jobs, func(j database.Job) time.Time { return j.CreatedAt }, func(j database.Job) uuid.UUID { return j.ID }, arg.Cursor, arg.Limit), nil
}

func (s *fakeStore) ListJobCourses(_ context.Context, jobIDs []uuid.UUID) ([]database.JobCourse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := map[uuid.UUID]bool{}
	for _, id := range jobIDs {
		want[id] = true
	}
	var out []database.JobCourse
	for _, jc := range s.jobCourses {
		if want[jc.JobID] {
			out = append(out, jc)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateApplication(_ context.Context, arg database.CreateApplicationParams) (database.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.applications {
		if a.JobID == arg.JobID && a.StudentID == arg.StudentID {
			return database.Application{}, errDuplicate
		}
	}
	now := s.tick()
	a := database.Application{
		ID:              uuid.New(),
		JobID:           arg.JobID,
		StudentID:       arg.StudentID,
		CoverLetter:     arg.CoverLetter,
		Status:          "pending",
		ScreeningStatus: "none",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.applications = append(s.applications, a)
	return a, nil
}

func (s *fakeStore) SetApplicationResume(_ context.Context, arg database.SetApplicationResumeParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.applications {
		if a.ID == arg.ID {
			s.applications[i].ResumeKey = arg.ResumeKey
			s.applications[i].ResumeMime = arg.ResumeMime
			s.applications[i].ScreeningStatus = arg.ScreeningStatus
		}
	}
	return nil
}

func (s *fakeStore) GetApplication(_ context.Context, id uuid.UUID) (database.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.applications {
		if a.ID == id {
			return a, nil
		}
	}
	return database.Application{}, sql.ErrNoRows
}

func (s *fakeStore) ListApplicationsByStudent(_ context.Context, studentID uuid.UUID) ([]database.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []database.Application
	for _, a := range s.applications {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeStore) ListApplicationsByJob(_ context.Context, jobID uuid.UUID) ([]database.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []database.Application
	for _, a := range s.applications {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateApplicationStatus(_ context.Context, arg database.UpdateApplicationStatusParams) (database.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.applications {
		if a.ID == arg.ID {
			s.applications[i].Status = arg.Status
			s.applications[i].UpdatedAt = s.tick()
			return s.applications[i], nil
		}
	}
	return database.Application{}, sql.ErrNoRows
}

func (s *fakeStore) CreateOrganization(_ context.Context, arg database.CreateOrganizationParams) (database.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := database.Organization{ID: uuid.New(), OwnerID: arg.OwnerID, Name: arg.Name, Description: arg.Description, CreatedAt: s.tick()}
	s.orgs[o.ID] = o
	return o, nil
}

func (s *fakeStore) GetOrganization(_ context.Context, id uuid.UUID) (database.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orgs[id]
	if !ok {
		return database.Organization{}, sql.ErrNoRows
	}
	return o, nil
}

func (s *fakeStore) AddMember(_ context.Context, arg database.AddMemberParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]uuid.UUID{arg.OrganizationID, arg.UserID}
	if _, ok := s.members[key]; ok {
		return 0, nil
	}
	s.members[key] = arg.Role
	return 1, nil
}

func (s *fakeStore) RemoveMember(_ context.Context, arg database.RemoveMemberParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]uuid.UUID{arg.OrganizationID, arg.UserID}
	if _, ok := s.members[key]; !ok {
		return 0, nil
	}
	delete(s.members, key)
	return 1, nil
}

func (s *fakeStore) MarkNotificationRead(_ context.Context, arg database.MarkNotificationReadParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifications {
		if n.ID == arg.ID && n.RecipientID == arg.RecipientID {
			s.notifications[i].IsRead = true
			return 1, nil
		}
	}
	return 0, nil
}

type fakeSessions struct {
	mu     sync.Mutex
	tokens map[string]uuid.UUID
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: map[string]uuid.UUID{}}
}

func (f *fakeSessions) Create(_ context.Context, userID uuid.UUID) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token := auth.NewToken()
	f.tokens[token] = userID
	return token, nil
}

func (f *fakeSessions) Lookup(_ context.Context, token string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.tokens[token]
	if !ok {
		return uuid.Nil, auth.ErrSessionNotFound
	}
	return id, nil
}

func (f *fakeSessions) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	return nil
}

type recordingPublisher struct {
	mu            sync.Mutex
	notifications []events.NotificationEvent
	screenings    []events.ApplicationMessage
	updates       []events.ApplicationUpdate
}

func (p *recordingPublisher) PublishNotification(_ context.Context, e events.NotificationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append(p.notifications, e)
	return nil
}

func (p *recordingPublisher) QueueScreening(_ context.Context, m events.ApplicationMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.screenings = append(p.screenings, m)
	return nil
}

func (p *recordingPublisher) PublishApplicationUpdate(_ context.Context, u events.ApplicationUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates = append(p.updates, u)
	return nil
}

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	mimes   map[string]string
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: map[string][]byte{}, mimes: map[string]string{}}
}

func (b *fakeBucket) Upload(_ context.Context, key, mime string, body []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = body
	b.mimes[key] = mime
	return nil
}

func (b *fakeBucket) Download(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	body, ok := b.objects[key]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return body, nil
}

type testEnv struct {
	store    *fakeStore
	sessions *fakeSessions
	events   *recordingPublisher
	bucket   *fakeBucket
	router   *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	env := &testEnv{
		store:    newFakeStore(),
		sessions: newFakeSessions(),
		events:   &recordingPublisher{},
		bucket:   newFakeBucket(),
	}
	env.router = NewServer(Options{
		Store:      env.store,
		Sessions:   env.sessions,
		Events:     env.events,
		Bucket:     env.bucket,
		SessionTTL: time.Hour,
	}).Router()
	return env
}

// login returns a bearer token for user.
func (e *testEnv) login(t *testing.T, user database.User) string {
	t.Helper()
	token, err := e.sessions.Create(context.Background(), user.ID)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.send(req, token)
}

func (e *testEnv) send(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (s *fakeStore) addCourse(instructor uuid.UUID, code string) database.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := database.Course{ID: uuid.New(), InstructorID: instructor, Code: code, Title: code, CreatedAt: s.tick()}
	s.courses[c.ID] = c
	return c
}

func (s *fakeStore) CreateBookmark(_ context.Context, arg database.CreateBookmarkParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]uuid.UUID{arg.UserID, arg.PostID}
	if s.bookmarks[key] {
		return 0, nil
	}
	s.bookmarks[key] = true
	return 1, nil
}

func (s *fakeStore) DeleteBookmark(_ context.Context, arg database.DeleteBookmarkParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]uuid.UUID{arg.UserID, arg.PostID}
	if !s.bookmarks[key] {
		return 0, nil
	}
	delete(s.bookmarks, key)
	return 1, nil
}

func (s *fakeStore) ListBookmarkedPosts(_ context.Context, arg database.ListBookmarkedPostsParams) ([]database.PostRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var saved []database.Post
	for _, p := range s.posts {
		if s.bookmarks[[2]uuid.UUID{arg.UserID, p.ID}] {
			saved = append(saved, p)
		}
	}
	page := newestFirst(saved, func(p database.Post) time.Time { return p.CreatedAt }, func(p database.Post) uuid.UUID { return p.ID }, arg.Cursor, arg.Limit)
	out := make([]database.PostRow, 0, len(page))
	for _, p := range page {
		out = append(out, s.postRow(p, arg.UserID))
	}
	return out, nil
}

func (s *fakeStore) CreateComment(_ context.Context, arg database.CreateCommentParams) (database.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cm := database.Comment{ID: uuid.New(), PostID: arg.PostID, AuthorID: arg.AuthorID, Content: arg.Content, CreatedAt: s.tick()}
	s.comments = append(s.comments, cm)
	return cm, nil
}

func (s *fakeStore) ListComments(_ context.Context, arg database.ListCommentsParams) ([]database.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var onPost []database.Comment
	for _, cm := range s.comments {
		if cm.PostID == arg.PostID {
			onPost = append(onPost, cm)
		}
	}
	return newestFirst(onPost, func(cm database.Comment) time.Time { return cm.CreatedAt }, func(cm database.Comment) uuid.UUID { return cm.ID }, arg.Cursor, arg.Limit), nil
}

func (s *fakeStore) LikeJob(_ context.Context, arg database.LikeJobParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]uuid.UUID{arg.UserID, arg.JobID}
	if s.jobLikes[key] {
		return 0, nil
	}
	s.jobLikes[key] = true
	return 1, nil
}

func (s *fakeStore) UnlikeJob(_ context.Context, arg database.UnlikeJobParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]uuid.UUID{arg.UserID, arg.JobID}
	if !s.jobLikes[key] {
		return 0, nil
	}
	delete(s.jobLikes, key)
	return 1, nil
}

func (s *fakeStore) GetJobLikes(_ context.Context, arg database.GetJobLikesParams) (database.GetJobLikesRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var row database.GetJobLikesRow
	for key := range s.jobLikes {
		if key[1] == arg.JobID {
			row.Count++
		}
	}
	row.Liked = s.jobLikes[[2]uuid.UUID{arg.UserID, arg.JobID}]
	return row, nil
}

func (s *fakeStore) CreateCourse(_ context.Context, arg database.CreateCourseParams) (database.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if arg.FacultyID.Valid && !s.hasFaculty(arg.FacultyID.UUID) {
		return database.Course{}, errMissingRef
	}
	c := database.Course{
		ID:           uuid.New(),
		InstructorID: arg.InstructorID,
		FacultyID:    arg.FacultyID,
		Code:         arg.Code,
		Title:        arg.Title,
		Description:  arg.Description,
		CreatedAt:    s.tick(),
	}
	s.courses[c.ID] = c
	return c, nil
}

func (s *fakeStore) hasFaculty(id uuid.UUID) bool {
	for _, f := range s.faculties {
		if f.ID == id {
			return true
		}
	}
	return false
}

func (s *fakeStore) GetCourse(_ context.Context, id uuid.UUID) (database.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[id]
	if !ok {
		return database.Course{}, sql.ErrNoRows
	}
	return c, nil
}

func (s *fakeStore) ListCourses(_ context.Context, arg database.ListCoursesParams) ([]database.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]database.Course, 0, len(s.courses))
	for _, c := range s.courses {
		all = append(all, c)
	}
	return newestFirst(all, func(c database.Course) time.Time { return c.CreatedAt }, func(c database.Course) uuid.UUID { return c.ID }, arg.Cursor, arg.Limit), nil
}

func (s *fakeStore) CreateEnrollment(_ context.Context, arg database.CreateEnrollmentParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.enrollments[arg.StudentID] {
		if id == arg.CourseID {
			return 0, nil
		}
	}
	s.enrollments[arg.StudentID] = append(s.enrollments[arg.StudentID], arg.CourseID)
	return 1, nil
}

func (s *fakeStore) DeleteEnrollment(_ context.Context, arg database.DeleteEnrollmentParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.enrollments[arg.StudentID]
	for i, id := range ids {
		if id == arg.CourseID {
			s.enrollments[arg.StudentID] = append(ids[:i:i], ids[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *fakeStore) CreateSchool(_ context.Context, arg database.CreateSchoolParams) (database.School, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc := database.School{ID: uuid.New(), OwnerID: arg.OwnerID, Name: arg.Name, Location: arg.Location, CreatedAt: s.tick()}
	s.schools[sc.ID] = sc
	return sc, nil
}

func (s *fakeStore) GetSchool(_ context.Context, id uuid.UUID) (database.School, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.schools[id]
	if !ok {
		return database.School{}, sql.ErrNoRows
	}
	return sc, nil
}

func (s *fakeStore) ListSchools(_ context.Context) ([]database.School, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]database.School, 0, len(s.schools))
	for _, sc := range s.schools {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeStore) CreateFaculty(_ context.Context, arg database.CreateFacultyParams) (database.Faculty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := database.Faculty{ID: uuid.New(), SchoolID: arg.SchoolID, Name: arg.Name, CreatedAt: s.tick()}
	s.faculties = append(s.faculties, f)
	return f, nil
}

func (s *fakeStore) ListFaculties(_ context.Context, schoolID uuid.UUID) ([]database.Faculty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []database.Faculty
	for _, f := range s.faculties {
		if f.SchoolID == schoolID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateResearch(_ context.Context, arg database.CreateResearchParams) (database.Research, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := database.Research{ID: uuid.New(), AuthorID: arg.AuthorID, Title: arg.Title, Abstract: arg.Abstract, Url: arg.Url, CreatedAt: s.tick()}
	s.researches = append(s.researches, r)
	return r, nil
}

func (s *fakeStore) ListResearches(_ context.Context, arg database.ListResearchesParams) ([]database.Research, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newestFirst(s.researches, func(r database.Research) time.Time { return r.CreatedAt }, func(r database.Research) uuid.UUID { return r.ID }, arg.Cursor, arg.Limit), nil
}
