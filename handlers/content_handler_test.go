package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/storyarchive/content-api/models"
	"github.com/storyarchive/content-api/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockContentRepository is a mock implementation of repositories.ContentRepository
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) Create(ctx context.Context, content *models.Content) error {
	args := m.Called(ctx, content)
	return args.Error(0)
}

func (m *MockContentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Content), args.Error(1)
}

func (m *MockContentRepository) List(ctx context.Context) ([]*models.Content, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Content), args.Error(1)
}

func (m *MockContentRepository) Update(ctx context.Context, content *models.Content) error {
	args := m.Called(ctx, content)
	return args.Error(0)
}

func (m *MockContentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// newRouter wires the content handler the way the application routes do,
// so URL parameters resolve through chi.
func newRouter(handler *ContentHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/content", handler.HandleListContents)
	r.Get("/content/{id}", handler.HandleGetContent)
	r.Post("/content", handler.HandleCreateContent)
	r.Put("/content/{id}", handler.HandleUpdateContent)
	r.Delete("/content/{id}", handler.HandleDeleteContent)
	return r
}

func TestContentHandler_List(t *testing.T) {
	t.Run("returns entries", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		handler := NewContentHandler(mockRepo, zap.NewNop())

		contents := []*models.Content{
			models.NewContent("One", "Intro", "Source", "Story", []string{"a.jpg"}),
			models.NewContent("Two", "Intro", "Source", "Story", nil),
		}
		mockRepo.On("List", mock.Anything).Return(contents, nil)

		req := httptest.NewRequest(http.MethodGet, "/content", nil)
		rec := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response struct {
			Data []ContentResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		require.Len(t, response.Data, 2)
		assert.Equal(t, "One", response.Data[0].Title)
		// nil images serialize as an empty array, not null
		assert.NotNil(t, response.Data[1].Images)
	})

	t.Run("empty store returns empty array", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		handler := NewContentHandler(mockRepo, zap.NewNop())

		mockRepo.On("List", mock.Anything).Return([]*models.Content{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/content", nil)
		rec := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"data":[]`)
	})

	t.Run("store failure returns 500", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		handler := NewContentHandler(mockRepo, zap.NewNop())

		mockRepo.On("List", mock.Anything).Return(nil, assert.AnError)

		req := httptest.NewRequest(http.MethodGet, "/content", nil)
		rec := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestContentHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		handler := NewContentHandler(mockRepo, zap.NewNop())

		content := models.NewContent("Title", "Intro", "Source", "Story", []string{"a.jpg"})
		mockRepo.On("GetByID", mock.Anything, content.ID).Return(content, nil)

		req := httptest.NewRequest(http.MethodGet, "/content/"+content.ID.String(), nil)
		rec := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response struct {
			Data ContentResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, content.ID, response.Data.ID)
		assert.Equal(t, "Title", response.Data.Title)
	})

	t.Run("unknown ID returns 404", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		handler := NewContentHandler(mockRepo, zap.NewNop())

		id := uuid.New()
		mockRepo.On("GetByID", mock.Anything, id).Return(nil, repositories.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/content/"+id.String(), nil)
		rec := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed ID returns 400", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		handler := NewContentHandler(mockRepo, zap.NewNop())

		req := httptest.NewRequest(http.MethodGet, "/content/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockRepo.AssertNotCalled(t, "GetByID")
	})
}

func TestContentHandler_Create(t *testing.T) {
	t.Run("successful create returns 201", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		handler := NewContentHandler(mockRepo, zap.NewNop())

		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		body, _ := json.Marshal(CreateContentRequest{
			Title:        "Title",
			Introduction: "Intro",
			Source:       "Source",
			Story:        "Story",
			Images:       []string{"a.jpg", "b.jpg"},
		})
		req := httptest.NewRequest(http.MethodPost, "/content", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		handler := NewContentHandler(mockRepo, zap.NewNop())

		body, _ := json.Marshal(CreateContentRequest{Title: "Title"})
		req := httptest.NewRequest(http.MethodPost, "/content", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("more than five images returns 400", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		handler := NewContentHandler(mockRepo, zap.NewNop())

		body, _ := json.Marshal(CreateContentRequest{
			Title:        "Title",
			Introduction: "Intro",
			Source:       "Source",
			Story:        "Story",
			Images:       []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg", "6.jpg"},
		})
		req := httptest.NewRequest(http.MethodPost, "/content", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestContentHandler_Update(t *testing.T) {
	t.Run("partial update preserves unset fields", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		handler := NewContentHandler(mockRepo, zap.NewNop())

		content := models.NewContent("Old Title", "Intro", "Source", "Story", []string{"a.jpg"})
		mockRepo.On("GetByID", mock.Anything, content.ID).Return(content, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *models.Content) bool {
			return c.Title == "New Title" && c.Introduction == "Intro"
		})).Return(nil)

		body := []byte(`{"title":"New Title"}`)
		req := httptest.NewRequest(http.MethodPut, "/content/"+content.ID.String(), bytes.NewReader(body))
		rec := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown ID returns 404", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		handler := NewContentHandler(mockRepo, zap.NewNop())

		id := uuid.New()
		mockRepo.On("GetByID", mock.Anything, id).Return(nil, repositories.ErrNotFound)

		body := []byte(`{"title":"New Title"}`)
		req := httptest.NewRequest(http.MethodPut, "/content/"+id.String(), bytes.NewReader(body))
		rec := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockRepo.AssertNotCalled(t, "Update")
	})
}

func TestContentHandler_Delete(t *testing.T) {
	t.Run("successful delete returns 204", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		handler := NewContentHandler(mockRepo, zap.NewNop())

		id := uuid.New()
		mockRepo.On("Delete", mock.Anything, id).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/content/"+id.String(), nil)
		rec := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("unknown ID returns 404", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		handler := NewContentHandler(mockRepo, zap.NewNop())

		id := uuid.New()
		mockRepo.On("Delete", mock.Anything, id).Return(repositories.ErrNotFound)

		req := httptest.NewRequest(http.MethodDelete, "/content/"+id.String(), nil)
		rec := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
