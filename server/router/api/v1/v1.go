// Package v1 exposes the HTTP API: topic and note CRUD, tutor settings,
// and the tutor ask endpoint.
package v1

import (
	"github.com/labstack/echo/v5"

	"github.com/notetutor/notetutor/internal/profile"
	"github.com/notetutor/notetutor/internal/tutor"
	"github.com/notetutor/notetutor/plugin/vectorstore"
	"github.com/notetutor/notetutor/store"
)

type APIV1Service struct {
	Profile     *profile.Profile
	Store       *store.Store
	Tutor       *tutor.Service
	VectorStore *vectorstore.Store // nil when embeddings are not configured
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store, tutor *tutor.Service, vectorStore *vectorstore.Store) *APIV1Service {
	return &APIV1Service{
		Profile:     profile,
		Store:       store,
		Tutor:       tutor,
		VectorStore: vectorStore,
	}
}

// Register wires all v1 routes onto the echo instance.
func (s *APIV1Service) Register(e *echo.Echo) {
	g := e.Group("/api/v1")

	g.GET("/topics", s.listTopics)
	g.POST("/topics", s.createTopic)
	g.GET("/topics/:uid", s.getTopic)
	g.PATCH("/topics/:uid", s.updateTopic)
	g.DELETE("/topics/:uid", s.deleteTopic)

	g.GET("/topics/:uid/notes", s.listNotes)
	g.POST("/topics/:uid/notes", s.createNote)
	g.GET("/notes/:uid", s.getNote)
	g.PATCH("/notes/:uid", s.updateNote)
	g.DELETE("/notes/:uid", s.deleteNote)

	g.GET("/topics/:uid/chat", s.listChatMessages)
	g.DELETE("/topics/:uid/chat", s.clearChat)
	g.POST("/topics/:uid/tutor", s.askTutor)

	g.GET("/tutor/settings", s.getTutorSetting)
	g.PUT("/tutor/settings", s.updateTutorSetting)
}
