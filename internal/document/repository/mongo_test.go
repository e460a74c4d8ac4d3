package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/lexdesk/lexdesk/backend/go-services/internal/document"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/query"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert returns generated id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		s := NewMongoStore(mt.DB)

		id, err := s.Insert(context.Background(), "client", document.Record{"name": "Acme Corp"})
		require.NoError(mt, err)
		_, err = primitive.ObjectIDFromHex(id)
		require.NoError(mt, err)
	})

	mt.Run("insert write error is a persistence error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))
		s := NewMongoStore(mt.DB)

		_, err := s.Insert(context.Background(), "client", document.Record{"name": "Acme Corp"})
		var perr *PersistenceError
		require.True(mt, errors.As(err, &perr))
		require.Equal(mt, "insert", perr.Op)
		require.False(mt, errors.Is(err, ErrUnavailable))
	})

	mt.Run("find decodes records", func(mt *mtest.T) {
		a, b := primitive.NewObjectID(), primitive.NewObjectID()
		ns := mt.DB.Name() + ".case"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: a}, {Key: "title", Value: "Merger A"}, {Key: "status", Value: "open"}},
			bson.D{{Key: "_id", Value: b}, {Key: "title", Value: "Merger B"}, {Key: "status", Value: "open"}},
		))
		s := NewMongoStore(mt.DB)

		f := query.Build("merger", []string{"title"}, []query.Condition{{Field: "status", Value: "open"}})
		list, err := s.Find(context.Background(), "case", f, 10)
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		require.Equal(mt, a.Hex(), document.IDString(list[0][document.FieldID]))
		require.Equal(mt, "Merger B", list[1]["title"])
	})

	mt.Run("find with no matches returns empty slice", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".task", mtest.FirstBatch))
		s := NewMongoStore(mt.DB)

		list, err := s.Find(context.Background(), "task", query.Filter{}, 10)
		require.NoError(mt, err)
		require.NotNil(mt, list)
		require.Len(mt, list, 0)
	})

	mt.Run("find command error is a persistence error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "bad query",
		}))
		s := NewMongoStore(mt.DB)

		_, err := s.Find(context.Background(), "task", query.Filter{}, 10)
		var perr *PersistenceError
		require.True(mt, errors.As(err, &perr))
	})
}
