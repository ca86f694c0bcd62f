package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/apiclient"
	"github.com/instituto-brotar/painel-brotar/internal/listing"
	"github.com/instituto-brotar/painel-brotar/internal/middleware"
	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/uistate"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
	"github.com/instituto-brotar/painel-brotar/web"
	"go.uber.org/zap"
)

// ListData is the data of every list page
type ListData[T any] struct {
	Items []T
	Query string
	// Total counts the loaded rows before filtering
	Total int
}

// ConfirmDeleteData is the delete confirmation page
type ConfirmDeleteData struct {
	Heading string
	Message string
	Action  string
	Cancel  string
}

// entityList describes one list page and its two-phase delete
type entityList[T listing.Identified] struct {
	name     string
	basePath string
	resource string
	source   listing.Source[T]
	deleter  listing.Deleter
	fields   []func(T) string
	label    func(T) string

	loadFailed string
	notFound   string
	heading    string
	deleted    string
	deleteFail string

	// lists to drop along with this one after a delete
	related []string
}

// load fills the view for a page visit. The confirmation page reuses the
// rows the user was looking at.
func (l entityList[T]) load(p *Panel, c *gin.Context, s *Scope, visit bool) (*listing.View[T], error) {
	view := listView[T](p, s, l.name)
	var err error
	if visit {
		err = view.Visit(c.Request.Context(), l.source)
	} else {
		err = view.Load(c.Request.Context(), l.source)
	}
	if err != nil {
		p.backendFailure("failed to load list", err, zap.String("list", l.name))
	}
	return view, err
}

// page builds the list data for the current ?q= filter
func (l entityList[T]) page(p *Panel, c *gin.Context, s *Scope) (ListData[T], int, string) {
	query := strings.TrimSpace(c.Query("q"))
	view, err := l.load(p, c, s, true)
	if err != nil {
		return ListData[T]{Items: []T{}, Query: query}, statusFor(err), l.loadFailed
	}
	return ListData[T]{
		Items: view.Filter(query, l.fields...),
		Query: query,
		Total: len(view.Items()),
	}, http.StatusOK, ""
}

// requestDelete is the first phase: the row is marked and the
// confirmation page rendered. Nothing is sent to the backend.
func (l entityList[T]) requestDelete(p *Panel, c *gin.Context, s *Scope) {
	ctx := c.Request.Context()
	id := pathID(c)
	view, err := l.load(p, c, s, false)
	if err != nil {
		p.redirect(c, s, uistate.ToastError, l.loadFailed, l.basePath)
		return
	}
	item, found := view.Find(id)
	if !found {
		p.redirect(c, s, uistate.ToastError, l.notFound, l.basePath)
		return
	}
	if err := view.RequestDelete(ctx, id); err != nil {
		p.Logger.Warn("failed to record delete request", zap.String("list", l.name), zap.Error(err))
		p.redirect(c, s, uistate.ToastError, l.deleteFail, l.basePath)
		return
	}

	action := l.basePath + "/" + strconv.FormatInt(id, 10) + "/excluir"
	p.render(c, s, http.StatusOK, "confirm_delete", web.Page{
		Title:   l.heading,
		Section: sectionOf(l.basePath),
		Data: ConfirmDeleteData{
			Heading: l.heading,
			Message: "Tem certeza que deseja excluir \"" + l.label(item) + "\"? Esta ação não pode ser desfeita.",
			Action:  action,
			Cancel:  l.basePath,
		},
	})
}

// confirmDelete is the second phase. Only an accepted confirmation that
// matches the pending request reaches the backend.
func (l entityList[T]) confirmDelete(p *Panel, c *gin.Context, s *Scope) {
	ctx := c.Request.Context()
	id := pathID(c)
	view := listView[T](p, s, l.name)

	if c.PostForm("confirm") != "sim" {
		if err := view.CancelDelete(ctx); err != nil {
			p.Logger.Warn("failed to cancel delete request", zap.String("list", l.name), zap.Error(err))
		}
		c.Redirect(http.StatusSeeOther, l.basePath)
		return
	}

	err := view.ConfirmDelete(ctx, id, true, l.deleter)
	middleware.Audit(c, utils.AuditActionDelete, l.resource, strconv.FormatInt(id, 10), nil, err)
	switch {
	case errors.Is(err, models.ErrDeleteNotConfirmed):
		p.redirect(c, s, uistate.ToastError, "Confirme a exclusão antes de continuar.", l.basePath)
	case err != nil:
		p.backendFailure("failed to delete", err, zap.String("list", l.name), zap.Int64("id", id))
		p.redirect(c, s, uistate.ToastError, apiclient.MessageOr(err, l.deleteFail), l.basePath)
	default:
		if len(l.related) > 0 {
			p.invalidate(c, s, l.related...)
		}
		p.redirect(c, s, uistate.ToastSuccess, l.deleted, l.basePath)
	}
}

func sectionOf(basePath string) web.Section {
	for _, item := range web.Menu {
		if item.Href == basePath {
			return item.Section
		}
	}
	return web.SectionOverview
}
