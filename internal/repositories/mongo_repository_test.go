package repositories

import (
	"context"
	"testing"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/anonto42/synapse-forum/backend/internal/pagination"
	"github.com/anonto42/synapse-forum/backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockMongo(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func commandNames(mt *mtest.T) []string {
	var names []string
	for _, evt := range mt.GetAllStartedEvents() {
		names = append(names, evt.CommandName)
	}
	return names
}

// firstUpdate decodes updates[0] of the first update command sent
func firstUpdate(mt *mtest.T, into any) {
	var command bson.Raw
	for _, evt := range mt.GetAllStartedEvents() {
		if evt.CommandName == "update" {
			command = evt.Command
			break
		}
	}
	require.NotNil(mt, command, "no update command sent")
	updates, err := command.Lookup("updates").Array().Values()
	require.NoError(mt, err)
	require.NotEmpty(mt, updates)
	require.NoError(mt, updates[0].Unmarshal(into))
}

func duplicateKeyResponse() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{
		Index:   0,
		Code:    11000,
		Message: "E11000 duplicate key error collection: synapseForumDB.users index: email_unique",
	})
}

func TestMongoUserRepository(t *testing.T) {
	mt := newMockMongo(t)
	ctx := context.Background()

	mt.Run("create applies defaults", func(mt *mtest.T) {
		repo := NewMongoUserRepository(store.New(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		ack, err := repo.CreateUser(ctx, &models.User{Email: "a@x.com"})
		require.NoError(mt, err)
		assert.True(mt, ack.Acknowledged)
		assert.IsType(mt, primitive.ObjectID{}, ack.InsertedID)

		docs, err := mt.GetStartedEvent().Command.Lookup("documents").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, docs, 1)
		var stored models.User
		require.NoError(mt, docs[0].Unmarshal(&stored))
		assert.Equal(mt, models.RoleMember, stored.Role)
		assert.Equal(mt, models.MembershipFree, stored.Membership)
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		repo := NewMongoUserRepository(store.New(mt.DB))
		mt.AddMockResponses(duplicateKeyResponse())

		_, err := repo.CreateUser(ctx, &models.User{Email: "a@x.com"})
		assert.Equal(mt, apperr.KindDuplicate, apperr.KindOf(err))
		assert.Equal(mt, []string{"insert"}, commandNames(mt))
	})

	mt.Run("get by email", func(mt *mtest.T) {
		repo := NewMongoUserRepository(store.New(mt.DB))
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "synapseForumDB.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "a@x.com"},
			{Key: "role", Value: "admin"},
			{Key: "membership", Value: "gold"},
		}))

		user, err := repo.GetUserByEmail(ctx, "a@x.com")
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), user.ID)
		assert.Equal(mt, models.RoleAdmin, user.Role)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		repo := NewMongoUserRepository(store.New(mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "synapseForumDB.users", mtest.FirstBatch))

		_, err := repo.GetUserByEmail(ctx, "ghost@x.com")
		assert.Equal(mt, apperr.KindNotFound, apperr.KindOf(err))
	})

	mt.Run("set membership", func(mt *mtest.T) {
		repo := NewMongoUserRepository(store.New(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		ack, err := repo.SetMembership(ctx, "a@x.com", models.MembershipGold)
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), ack.MatchedCount)
		assert.Equal(mt, int64(1), ack.ModifiedCount)

		var update struct {
			Q struct {
				Email string `bson:"email"`
			} `bson:"q"`
			U struct {
				Set map[string]string `bson:"$set"`
			} `bson:"u"`
		}
		firstUpdate(mt, &update)
		assert.Equal(mt, "a@x.com", update.Q.Email)
		assert.Equal(mt, map[string]string{"membership": "gold"}, update.U.Set)
	})
}

func TestMongoReportRepository(t *testing.T) {
	mt := newMockMongo(t)
	ctx := context.Background()
	id := primitive.NewObjectID().Hex()

	mt.Run("resolve unmatched", func(mt *mtest.T) {
		repo := NewMongoReportRepository(store.New(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		_, err := repo.ResolveReport(ctx, id)
		assert.Equal(mt, apperr.KindNotFound, apperr.KindOf(err))
	})

	mt.Run("resolve", func(mt *mtest.T) {
		repo := NewMongoReportRepository(store.New(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		ack, err := repo.ResolveReport(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), ack.ModifiedCount)

		var update struct {
			U struct {
				Set map[string]bool `bson:"$set"`
			} `bson:"u"`
		}
		firstUpdate(mt, &update)
		assert.Equal(mt, map[string]bool{"resolved": true}, update.U.Set)
	})

	mt.Run("delete unmatched", func(mt *mtest.T) {
		repo := NewMongoReportRepository(store.New(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		_, err := repo.DeleteReport(ctx, id)
		assert.Equal(mt, apperr.KindNotFound, apperr.KindOf(err))
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewMongoReportRepository(store.New(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		ack, err := repo.DeleteReport(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), ack.DeletedCount)
	})

	mt.Run("malformed id sends nothing", func(mt *mtest.T) {
		repo := NewMongoReportRepository(store.New(mt.DB))

		_, err := repo.ResolveReport(ctx, "nope")
		assert.Equal(mt, apperr.KindValidationFailure, apperr.KindOf(err))
		_, err = repo.DeleteReport(ctx, "nope")
		assert.Equal(mt, apperr.KindValidationFailure, apperr.KindOf(err))
		assert.Empty(mt, commandNames(mt))
	})

	mt.Run("create forces unresolved", func(mt *mtest.T) {
		repo := NewMongoReportRepository(store.New(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		report := &models.Report{CommentID: "c1", Resolved: true}
		_, err := repo.CreateReport(ctx, report)
		require.NoError(mt, err)
		assert.False(mt, report.Resolved)
		assert.False(mt, report.ReportedAt.IsZero())
	})
}

func TestMongoPaymentRepository(t *testing.T) {
	mt := newMockMongo(t)
	ctx := context.Background()
	updated := mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1})

	mt.Run("insert then upgrade", func(mt *mtest.T) {
		repo := NewMongoPaymentRepository(store.New(mt.DB), false)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}), updated)

		result, err := repo.CreatePayment(ctx, &models.Payment{Email: "a@x.com", Price: 25})
		require.NoError(mt, err)
		assert.True(mt, result.PaymentResult.Acknowledged)
		assert.Equal(mt, int64(1), result.MembershipResult.MatchedCount)
		assert.Equal(mt, []string{"insert", "update"}, commandNames(mt))

		var update struct {
			Q struct {
				Email string `bson:"email"`
			} `bson:"q"`
			U struct {
				Set map[string]string `bson:"$set"`
			} `bson:"u"`
		}
		firstUpdate(mt, &update)
		assert.Equal(mt, "a@x.com", update.Q.Email)
		assert.Equal(mt, map[string]string{"membership": "gold"}, update.U.Set)
	})

	mt.Run("failed insert leaves membership", func(mt *mtest.T) {
		repo := NewMongoPaymentRepository(store.New(mt.DB), false)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 2, Message: "bad payment"}))

		_, err := repo.CreatePayment(ctx, &models.Payment{Email: "a@x.com", Price: 25})
		require.Error(mt, err)
		assert.Equal(mt, []string{"insert"}, commandNames(mt))
	})

	mt.Run("failed upgrade", func(mt *mtest.T) {
		repo := NewMongoPaymentRepository(store.New(mt.DB), false)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad update", Name: "BadValue"}),
		)

		_, err := repo.CreatePayment(ctx, &models.Payment{Email: "a@x.com"})
		assert.Equal(mt, apperr.KindUpstreamFailure, apperr.KindOf(err))
	})

	mt.Run("transaction commits both writes", func(mt *mtest.T) {
		repo := NewMongoPaymentRepository(store.New(mt.DB), true)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}), updated, mtest.CreateSuccessResponse())

		result, err := repo.CreatePayment(ctx, &models.Payment{Email: "a@x.com", Price: 25})
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), result.MembershipResult.ModifiedCount)
		assert.Equal(mt, []string{"insert", "update", "commitTransaction"}, commandNames(mt))

		started, ok := mt.GetAllStartedEvents()[0].Command.Lookup("startTransaction").BooleanOK()
		assert.True(mt, ok)
		assert.True(mt, started)
	})

	mt.Run("transaction aborts on failed insert", func(mt *mtest.T) {
		repo := NewMongoPaymentRepository(store.New(mt.DB), true)
		mt.AddMockResponses(
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 2, Message: "bad payment"}),
			mtest.CreateSuccessResponse(),
		)

		_, err := repo.CreatePayment(ctx, &models.Payment{Email: "a@x.com", Price: 25})
		require.Error(mt, err)
		assert.NotContains(mt, commandNames(mt), "update")
		assert.NotContains(mt, commandNames(mt), "commitTransaction")
	})
}

func TestMongoPostRepository(t *testing.T) {
	mt := newMockMongo(t)
	ctx := context.Background()

	mt.Run("increment vote", func(mt *mtest.T) {
		repo := NewMongoPostRepository(store.New(mt.DB))
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		ack, err := repo.IncrementVote(ctx, id.Hex(), models.VoteFieldUp, -1)
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), ack.ModifiedCount)

		var update struct {
			Q struct {
				ID primitive.ObjectID `bson:"_id"`
			} `bson:"q"`
			U struct {
				Inc map[string]int `bson:"$inc"`
			} `bson:"u"`
		}
		firstUpdate(mt, &update)
		assert.Equal(mt, id, update.Q.ID)
		assert.Equal(mt, map[string]int{"upvote": -1}, update.U.Inc)
	})

	mt.Run("increment vote malformed id", func(mt *mtest.T) {
		repo := NewMongoPostRepository(store.New(mt.DB))

		_, err := repo.IncrementVote(ctx, "zzz", models.VoteFieldDown, 1)
		assert.Equal(mt, apperr.KindValidationFailure, apperr.KindOf(err))
		assert.Empty(mt, commandNames(mt))
	})

	mt.Run("get missing post", func(mt *mtest.T) {
		repo := NewMongoPostRepository(store.New(mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "synapseForumDB.allPosts", mtest.FirstBatch))

		_, err := repo.GetPostByID(ctx, primitive.NewObjectID().Hex())
		assert.Equal(mt, apperr.KindNotFound, apperr.KindOf(err))
	})

	mt.Run("create defaults", func(mt *mtest.T) {
		repo := NewMongoPostRepository(store.New(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		post := &models.Post{Title: "Hello"}
		_, err := repo.CreatePost(ctx, post)
		require.NoError(mt, err)
		assert.False(mt, post.PostedTime.IsZero())
		assert.NotNil(mt, post.Tags)
	})

	mt.Run("list popular", func(mt *mtest.T) {
		repo := NewMongoPostRepository(store.New(mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "synapseForumDB.allPosts", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "title", Value: "top"}, {Key: "upvote", Value: 3}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "title", Value: "next"}, {Key: "upvote", Value: 1}},
		))

		posts, err := repo.ListPopularPosts(ctx, pagination.Build("1", "2", nil))
		require.NoError(mt, err)
		require.Len(mt, posts, 2)
		assert.Equal(mt, "top", posts[0].Title)
		assert.Equal(mt, []string{"aggregate"}, commandNames(mt))
	})

	mt.Run("list empty is not nil", func(mt *mtest.T) {
		repo := NewMongoPostRepository(store.New(mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "synapseForumDB.allPosts", mtest.FirstBatch))

		posts, err := repo.ListPosts(ctx, pagination.Build("", "", pagination.TagFilter("go")))
		require.NoError(mt, err)
		assert.NotNil(mt, posts)
		assert.Empty(mt, posts)

		filter, err := mt.GetStartedEvent().Command.Lookup("filter").Document().Elements()
		require.NoError(mt, err)
		require.Len(mt, filter, 1)
		assert.Equal(mt, "tags", filter[0].Key())
	})
}

func TestMongoCollectionRepositories(t *testing.T) {
	mt := newMockMongo(t)
	ctx := context.Background()

	mt.Run("comments by post id", func(mt *mtest.T) {
		repo := NewMongoCommentRepository(store.New(mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "synapseForumDB.comments", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "postId", Value: "p1"}, {Key: "body", Value: "hi"}},
		))

		comments, err := repo.GetCommentsByPostID(ctx, "p1")
		require.NoError(mt, err)
		require.Len(mt, comments, 1)
		assert.Equal(mt, "hi", comments[0].Body)
	})

	mt.Run("announcement stamps postedAt", func(mt *mtest.T) {
		repo := NewMongoAnnouncementRepository(store.New(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		announcement := &models.Announcement{Title: "maintenance"}
		_, err := repo.CreateAnnouncement(ctx, announcement)
		require.NoError(mt, err)
		assert.False(mt, announcement.PostedAt.IsZero())
	})

	mt.Run("announcement count", func(mt *mtest.T) {
		repo := NewMongoAnnouncementRepository(store.New(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 4}))

		count, err := repo.CountAnnouncements(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, int64(4), count)
	})

	mt.Run("tags", func(mt *mtest.T) {
		repo := NewMongoTagRepository(store.New(mt.DB))
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateCursorResponse(0, "synapseForumDB.tags", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "label", Value: "go"}},
			),
		)

		ack, err := repo.CreateTag(ctx, &models.Tag{Label: "go"})
		require.NoError(mt, err)
		assert.True(mt, ack.Acknowledged)

		tags, err := repo.GetTags(ctx)
		require.NoError(mt, err)
		require.Len(mt, tags, 1)
		assert.Equal(mt, "go", tags[0].Label)
	})
}
