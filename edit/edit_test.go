package edit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	viewkit "github.com/dmitrymomot/viewkit"
	"github.com/dmitrymomot/viewkit/detail"
	"github.com/dmitrymomot/viewkit/edit"
	"github.com/dmitrymomot/viewkit/forms"
	"github.com/dmitrymomot/viewkit/store"
	"github.com/dmitrymomot/viewkit/store/memory"
)

type note struct {
	ID   string
	Text string
}

func noteRepo(items ...note) *memory.Repository[note] {
	repo := memory.New(func(n note, field string) (any, bool) {
		if field == "id" {
			return n.ID, true
		}
		return nil, false
	})
	for _, n := range items {
		_ = repo.Save(context.Background(), &n)
	}
	return repo
}

func noteFields() []forms.Field {
	return []forms.Field{{Name: "text", Required: true}}
}

func postForm(target string, data url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(data.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// okResponse confirms the handler ran.
type okResponse struct{}

func (okResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(http.StatusOK)
	return nil
}

// savingForm records whether Save ran.
type savingForm struct {
	*forms.Declared
	saved   bool
	saveErr error
}

func (f *savingForm) Save(ctx context.Context) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = true
	return nil
}

func TestFormView(t *testing.T) {
	factory := forms.DeclaredFactory(noteFields())

	wrapForm := func(t *testing.T, captured *forms.Form, opts ...edit.Option) http.HandlerFunc {
		t.Helper()
		handler := viewkit.HandlerFunc[viewkit.Context, struct{}](func(ctx viewkit.Context, req struct{}) viewkit.Response {
			if captured != nil {
				*captured = edit.FormFrom(ctx)
			}
			return okResponse{}
		})
		return viewkit.Wrap(handler,
			viewkit.WithDecorators(edit.FormView[viewkit.Context, struct{}](factory, opts...)),
		)
	}

	t.Run("get yields an unbound form", func(t *testing.T) {
		var form forms.Form
		wrapped := wrapForm(t, &form)

		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodGet, "/entry", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, form)
		assert.False(t, form.IsBound())
		assert.False(t, form.IsValid())
	})

	t.Run("post binds the form", func(t *testing.T) {
		var form forms.Form
		wrapped := wrapForm(t, &form)

		rec := httptest.NewRecorder()
		wrapped(rec, postForm("/entry", url.Values{"text": {"hello"}}))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, form)
		assert.True(t, form.IsBound())
		assert.True(t, form.IsValid())
		assert.Equal(t, "hello", form.CleanedData().Get("text"))
	})

	t.Run("invalid submission still reaches the handler", func(t *testing.T) {
		var form forms.Form
		wrapped := wrapForm(t, &form, edit.WithSuccessURL("/thanks"))

		rec := httptest.NewRecorder()
		wrapped(rec, postForm("/entry", url.Values{"text": {""}}))

		// Handler response, not the success redirect.
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, form)
		assert.True(t, form.IsBound())
		assert.False(t, form.IsValid())
		assert.True(t, form.Errors().Has("text"))
	})

	t.Run("valid submission redirects to the success url", func(t *testing.T) {
		wrapped := wrapForm(t, nil, edit.WithSuccessURL("/thanks"))

		rec := httptest.NewRecorder()
		wrapped(rec, postForm("/entry", url.Values{"text": {"hello"}}))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/thanks", rec.Header().Get("Location"))
	})

	t.Run("no success url keeps the handler response", func(t *testing.T) {
		wrapped := wrapForm(t, nil)

		rec := httptest.NewRecorder()
		wrapped(rec, postForm("/entry", url.Values{"text": {"hello"}}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Location"))
	})

	t.Run("gated-out post stays unbound", func(t *testing.T) {
		var bound bool
		saver := &savingForm{}
		factory := func(data url.Values) forms.Form {
			saver.Declared = forms.NewDeclared(noteFields(), data)
			bound = saver.IsBound()
			return saver
		}

		handler := viewkit.HandlerFunc[viewkit.Context, struct{}](func(ctx viewkit.Context, req struct{}) viewkit.Response {
			t.Fatal("handler must not run")
			return nil
		})

		wrapped := viewkit.Wrap(handler,
			viewkit.WithDecorators(
				edit.FormView[viewkit.Context, struct{}](factory,
					edit.WithMethods(http.MethodGet)),
			),
		)

		rec := httptest.NewRecorder()
		wrapped(rec, postForm("/entry", url.Values{"text": {"hello"}}))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.False(t, bound)
		assert.False(t, saver.saved)
	})

	t.Run("bound valid saver form is persisted", func(t *testing.T) {
		saver := &savingForm{}
		factory := func(data url.Values) forms.Form {
			saver.Declared = forms.NewDeclared(noteFields(), data)
			return saver
		}

		handler := viewkit.HandlerFunc[viewkit.Context, struct{}](func(ctx viewkit.Context, req struct{}) viewkit.Response {
			return okResponse{}
		})
		wrapped := viewkit.Wrap(handler,
			viewkit.WithDecorators(edit.FormView[viewkit.Context, struct{}](factory)),
		)

		rec := httptest.NewRecorder()
		wrapped(rec, postForm("/entry", url.Values{"text": {"hello"}}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, saver.saved)
	})

	t.Run("save failure short-circuits", func(t *testing.T) {
		saver := &savingForm{saveErr: errSaveFailed}
		factory := func(data url.Values) forms.Form {
			saver.Declared = forms.NewDeclared(noteFields(), data)
			return saver
		}

		handler := viewkit.HandlerFunc[viewkit.Context, struct{}](func(ctx viewkit.Context, req struct{}) viewkit.Response {
			t.Fatal("handler must not run")
			return nil
		})
		wrapped := viewkit.Wrap(handler,
			viewkit.WithDecorators(edit.FormView[viewkit.Context, struct{}](factory)),
		)

		rec := httptest.NewRecorder()
		wrapped(rec, postForm("/entry", url.Values{"text": {"hello"}}))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

var errSaveFailed = errors.New("save failed")

func TestCreateView(t *testing.T) {
	construct := func(data url.Values) (*note, error) {
		return &note{ID: "n-new", Text: data.Get("text")}, nil
	}

	wrapCreate := func(t *testing.T, repo store.Repository[note], opts ...edit.Option) http.HandlerFunc {
		t.Helper()
		handler := viewkit.HandlerFunc[viewkit.Context, struct{}](func(ctx viewkit.Context, req struct{}) viewkit.Response {
			return okResponse{}
		})
		return viewkit.Wrap(handler,
			viewkit.WithDecorators(
				edit.CreateView[viewkit.Context, struct{}, note](repo, noteFields(), construct, opts...),
			),
		)
	}

	t.Run("valid submission persists and redirects", func(t *testing.T) {
		repo := noteRepo()
		wrapped := wrapCreate(t, repo, edit.WithSuccessURL("/notes"))

		rec := httptest.NewRecorder()
		wrapped(rec, postForm("/notes/create", url.Values{"text": {"fresh"}}))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/notes", rec.Header().Get("Location"))

		created, err := repo.Get(context.Background(), "id", "n-new")
		require.NoError(t, err)
		assert.Equal(t, "fresh", created.Text)
	})

	t.Run("invalid submission persists nothing", func(t *testing.T) {
		repo := noteRepo()
		wrapped := wrapCreate(t, repo, edit.WithSuccessURL("/notes"))

		rec := httptest.NewRecorder()
		wrapped(rec, postForm("/notes/create", url.Values{"text": {""}}))

		assert.Equal(t, http.StatusOK, rec.Code)
		_, err := repo.Get(context.Background(), "id", "n-new")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("get renders a blank form without persisting", func(t *testing.T) {
		repo := noteRepo()
		wrapped := wrapCreate(t, repo)

		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodGet, "/notes/create", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		_, err := repo.Get(context.Background(), "id", "n-new")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUpdateView(t *testing.T) {
	type updateRequest struct {
		ID string
	}
	lookup := func(r updateRequest) any { return r.ID }
	apply := func(n *note, data url.Values) error {
		n.Text = data.Get("text")
		return nil
	}

	bindID := func(id string) viewkit.Bind {
		return func(r *http.Request, v any) error {
			v.(*updateRequest).ID = id
			return nil
		}
	}

	wrapUpdate := func(t *testing.T, repo store.Repository[note], id string, captured **note, opts ...edit.Option) http.HandlerFunc {
		t.Helper()
		handler := viewkit.HandlerFunc[viewkit.Context, updateRequest](func(ctx viewkit.Context, req updateRequest) viewkit.Response {
			if captured != nil {
				*captured = detail.ObjectFrom[note](ctx)
			}
			return okResponse{}
		})
		return viewkit.Wrap(handler,
			viewkit.WithBinders[viewkit.Context, updateRequest](bindID(id)),
			viewkit.WithDecorators(
				edit.UpdateView[viewkit.Context, updateRequest, note](repo, lookup, noteFields(), apply, opts...),
			),
		)
	}

	t.Run("valid submission applies and redirects", func(t *testing.T) {
		repo := noteRepo(note{ID: "n1", Text: "old"})
		wrapped := wrapUpdate(t, repo, "n1", nil, edit.WithSuccessURL("/notes"))

		rec := httptest.NewRecorder()
		wrapped(rec, postForm("/notes/n1/update", url.Values{"text": {"new"}}))

		assert.Equal(t, http.StatusFound, rec.Code)
		updated, err := repo.Get(context.Background(), "id", "n1")
		require.NoError(t, err)
		assert.Equal(t, "new", updated.Text)
	})

	t.Run("get exposes the unmodified entity and an unbound form", func(t *testing.T) {
		repo := noteRepo(note{ID: "n1", Text: "old"})
		var got *note
		wrapped := wrapUpdate(t, repo, "n1", &got)

		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodGet, "/notes/n1/update", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, "old", got.Text)
	})

	t.Run("invalid submission leaves the entity untouched", func(t *testing.T) {
		repo := noteRepo(note{ID: "n1", Text: "old"})
		wrapped := wrapUpdate(t, repo, "n1", nil, edit.WithSuccessURL("/notes"))

		rec := httptest.NewRecorder()
		wrapped(rec, postForm("/notes/n1/update", url.Values{"text": {""}}))

		assert.Equal(t, http.StatusOK, rec.Code)
		kept, err := repo.Get(context.Background(), "id", "n1")
		require.NoError(t, err)
		assert.Equal(t, "old", kept.Text)
	})

	t.Run("missing entity is a 404", func(t *testing.T) {
		repo := noteRepo()
		wrapped := wrapUpdate(t, repo, "ghost", nil)

		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodGet, "/notes/ghost/update", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "no object matches id=ghost")
	})
}

func TestDeleteView(t *testing.T) {
	type deleteRequest struct {
		ID string
	}
	lookup := func(r deleteRequest) any { return r.ID }

	bindID := func(id string) viewkit.Bind {
		return func(r *http.Request, v any) error {
			v.(*deleteRequest).ID = id
			return nil
		}
	}

	wrapDelete := func(t *testing.T, repo store.Repository[note], id string, captured **note, opts ...edit.Option) http.HandlerFunc {
		t.Helper()
		handler := viewkit.HandlerFunc[viewkit.Context, deleteRequest](func(ctx viewkit.Context, req deleteRequest) viewkit.Response {
			if captured != nil {
				*captured = detail.ObjectFrom[note](ctx)
			}
			return okResponse{}
		})
		return viewkit.Wrap(handler,
			viewkit.WithBinders[viewkit.Context, deleteRequest](bindID(id)),
			viewkit.WithDecorators(
				edit.DeleteView[viewkit.Context, deleteRequest, note](repo, lookup, opts...),
			),
		)
	}

	t.Run("get renders confirmation and keeps the entity", func(t *testing.T) {
		repo := noteRepo(note{ID: "n1", Text: "keep me"})
		var got *note
		wrapped := wrapDelete(t, repo, "n1", &got, edit.WithSuccessURL("/notes"))

		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodGet, "/notes/n1/delete", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, "keep me", got.Text)

		_, err := repo.Get(context.Background(), "id", "n1")
		assert.NoError(t, err)
	})

	t.Run("post deletes and redirects", func(t *testing.T) {
		repo := noteRepo(note{ID: "n1", Text: "doomed"})
		wrapped := wrapDelete(t, repo, "n1", nil, edit.WithSuccessURL("/notes"))

		rec := httptest.NewRecorder()
		wrapped(rec, postForm("/notes/n1/delete", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/notes", rec.Header().Get("Location"))

		_, err := repo.Get(context.Background(), "id", "n1")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("post without success url keeps the handler response", func(t *testing.T) {
		repo := noteRepo(note{ID: "n1", Text: "doomed"})
		wrapped := wrapDelete(t, repo, "n1", nil)

		rec := httptest.NewRecorder()
		wrapped(rec, postForm("/notes/n1/delete", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		_, err := repo.Get(context.Background(), "id", "n1")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("gated-out post deletes nothing", func(t *testing.T) {
		repo := noteRepo(note{ID: "n1", Text: "safe"})
		wrapped := wrapDelete(t, repo, "n1", nil,
			edit.WithMethods(http.MethodGet), edit.WithSuccessURL("/notes"))

		rec := httptest.NewRecorder()
		wrapped(rec, postForm("/notes/n1/delete", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		_, err := repo.Get(context.Background(), "id", "n1")
		assert.NoError(t, err)
	})

	t.Run("missing entity is a 404", func(t *testing.T) {
		repo := noteRepo()
		wrapped := wrapDelete(t, repo, "ghost", nil)

		rec := httptest.NewRecorder()
		wrapped(rec, postForm("/notes/ghost/delete", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
