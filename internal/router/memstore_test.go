package router

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/anonto42/synapse-forum/backend/internal/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore implements every repository interface in memory
type memStore struct {
	mu            sync.Mutex
	posts         []models.Post
	comments      []models.Comment
	tags          []models.Tag
	announcements []models.Announcement
	reports       []models.Report
	users         []models.User
	payments      []models.Payment

	failPaymentInsert bool
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) Ping(context.Context) error { return nil }

func objectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("invalid id format", err)
	}
	return objID, nil
}

func matchesPost(post models.Post, filter bson.M) bool {
	if tag, ok := filter["tags"]; ok {
		for _, t := range post.Tags {
			if t == tag {
				return true
			}
		}
		return false
	}
	return true
}

func (s *memStore) filtered(filter bson.M) []models.Post {
	var out []models.Post
	for _, p := range s.posts {
		if matchesPost(p, filter) {
			out = append(out, p)
		}
	}
	return out
}

func window(posts []models.Post, page pagination.Page) []models.Post {
	out := []models.Post{}
	if page.Skip < 0 || page.Skip >= int64(len(posts)) {
		return out
	}
	rest := posts[page.Skip:]
	if page.Limit < int64(len(rest)) {
		rest = rest[:page.Limit]
	}
	return append(out, rest...)
}

func (s *memStore) CreatePost(_ context.Context, post *models.Post) (*models.InsertAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = primitive.NewObjectID()
	s.posts = append(s.posts, *post)
	return &models.InsertAck{Acknowledged: true, InsertedID: post.ID}, nil
}

func (s *memStore) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == objID {
			post := p
			return &post, nil
		}
	}
	return nil, apperr.NotFound("post not found")
}

func (s *memStore) CountPosts(_ context.Context, filter bson.M) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.filtered(filter))), nil
}

func (s *memStore) ListPosts(_ context.Context, page pagination.Page) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := s.filtered(page.Filter)
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].PostedTime.After(posts[j].PostedTime) })
	return window(posts, page), nil
}

func (s *memStore) ListPopularPosts(_ context.Context, page pagination.Page) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := s.filtered(page.Filter)
	sort.SliceStable(posts, func(i, j int) bool {
		di, dj := posts[i].Upvote-posts[i].Downvote, posts[j].Upvote-posts[j].Downvote
		if di != dj {
			return di > dj
		}
		return posts[i].PostedTime.After(posts[j].PostedTime)
	})
	return window(posts, page), nil
}

func (s *memStore) ListPostsByAuthor(_ context.Context, email string) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Post{}
	for _, p := range s.posts {
		if p.AuthorEmail == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) IncrementVote(_ context.Context, id string, field models.VoteField, delta int) (*models.UpdateAck, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != objID {
			continue
		}
		if field == models.VoteFieldUp {
			s.posts[i].Upvote += delta
		} else {
			s.posts[i].Downvote += delta
		}
		return &models.UpdateAck{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
	}
	return &models.UpdateAck{Acknowledged: true}, nil
}

func (s *memStore) DeletePost(_ context.Context, id string) (*models.DeleteAck, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID == objID {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return &models.DeleteAck{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return &models.DeleteAck{Acknowledged: true}, nil
}

func (s *memStore) CreateComment(_ context.Context, comment *models.Comment) (*models.InsertAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment.ID = primitive.NewObjectID()
	s.comments = append(s.comments, *comment)
	return &models.InsertAck{Acknowledged: true, InsertedID: comment.ID}, nil
}

func (s *memStore) commentsWhere(match func(models.Comment) bool) []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Comment{}
	for _, c := range s.comments {
		if match(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s *memStore) GetCommentsByPostID(_ context.Context, postID string) ([]models.Comment, error) {
	return s.commentsWhere(func(c models.Comment) bool { return c.PostID == postID }), nil
}

func (s *memStore) GetCommentsByPostTitle(_ context.Context, title string) ([]models.Comment, error) {
	return s.commentsWhere(func(c models.Comment) bool { return c.PostTitle == title }), nil
}

func (s *memStore) CountComments(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.comments)), nil
}

func (s *memStore) CreateTag(_ context.Context, tag *models.Tag) (*models.InsertAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tag.ID = primitive.NewObjectID()
	s.tags = append(s.tags, *tag)
	return &models.InsertAck{Acknowledged: true, InsertedID: tag.ID}, nil
}

func (s *memStore) GetTags(context.Context) ([]models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Tag{}, s.tags...), nil
}

func (s *memStore) CreateAnnouncement(_ context.Context, a *models.Announcement) (*models.InsertAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.PostedAt.IsZero() {
		a.PostedAt = time.Now().UTC()
	}
	a.ID = primitive.NewObjectID()
	s.announcements = append(s.announcements, *a)
	return &models.InsertAck{Acknowledged: true, InsertedID: a.ID}, nil
}

func (s *memStore) GetAnnouncements(context.Context) ([]models.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]models.Announcement{}, s.announcements...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PostedAt.After(out[j].PostedAt) })
	return out, nil
}

func (s *memStore) CountAnnouncements(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.announcements)), nil
}

func (s *memStore) CreateReport(_ context.Context, report *models.Report) (*models.InsertAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report.ID = primitive.NewObjectID()
	s.reports = append(s.reports, *report)
	return &models.InsertAck{Acknowledged: true, InsertedID: report.ID}, nil
}

func (s *memStore) GetReports(context.Context) ([]models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Report{}, s.reports...), nil
}

func (s *memStore) ResolveReport(_ context.Context, id string) (*models.UpdateAck, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reports {
		if s.reports[i].ID == objID {
			s.reports[i].Resolved = true
			return &models.UpdateAck{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return nil, apperr.NotFound("report not found")
}

func (s *memStore) DeleteReport(_ context.Context, id string) (*models.DeleteAck, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reports {
		if s.reports[i].ID == objID {
			s.reports = append(s.reports[:i], s.reports[i+1:]...)
			return &models.DeleteAck{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return nil, apperr.NotFound("report not found")
}

func (s *memStore) CreateUser(_ context.Context, user *models.User) (*models.InsertAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, apperr.Duplicate("user already exists", nil)
		}
	}
	if user.Role == "" {
		user.Role = models.RoleMember
	}
	if user.Membership == "" {
		user.Membership = models.MembershipFree
	}
	user.ID = primitive.NewObjectID().Hex()
	s.users = append(s.users, *user)
	return &models.InsertAck{Acknowledged: true, InsertedID: user.ID}, nil
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (s *memStore) GetUsers(context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.User{}, s.users...), nil
}

func (s *memStore) SetRole(_ context.Context, email, role string) (*models.UpdateAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setUser(email, func(u *models.User) { u.Role = role }), nil
}

func (s *memStore) SetMembership(_ context.Context, email, membership string) (*models.UpdateAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setUser(email, func(u *models.User) { u.Membership = membership }), nil
}

// setUser must be called with mu held
func (s *memStore) setUser(email string, apply func(*models.User)) *models.UpdateAck {
	for i := range s.users {
		if s.users[i].Email == email {
			apply(&s.users[i])
			return &models.UpdateAck{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}
		}
	}
	return &models.UpdateAck{Acknowledged: true}
}

func (s *memStore) CountUsers(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

func (s *memStore) CreatePayment(_ context.Context, payment *models.Payment) (*models.PaymentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPaymentInsert {
		return nil, errors.New("insert payment: connection reset")
	}
	payment.ID = primitive.NewObjectID().Hex()
	s.payments = append(s.payments, *payment)
	membership := s.setUser(payment.Email, func(u *models.User) { u.Membership = models.MembershipGold })
	return &models.PaymentResult{
		PaymentResult:    &models.InsertAck{Acknowledged: true, InsertedID: payment.ID},
		MembershipResult: membership,
	}, nil
}

func (s *memStore) GetPaymentsByEmail(_ context.Context, email string) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Payment{}
	for _, p := range s.payments {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) user(email string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return models.User{}
}
