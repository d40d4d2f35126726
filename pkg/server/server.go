package server

import (
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/rocketresume/rocket/pkg/ai"
	"github.com/rocketresume/rocket/pkg/config"
	"github.com/rocketresume/rocket/pkg/match"
	"github.com/rocketresume/rocket/pkg/queue"
	"github.com/rocketresume/rocket/pkg/rocket"
	"github.com/rocketresume/rocket/pkg/server/store"
	gormstore "github.com/rocketresume/rocket/pkg/server/store/gorm"
	"github.com/rocketresume/rocket/pkg/storage"
	"github.com/rocketresume/rocket/pkg/token"
)

type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Config *config.RocketConfig
	Tokens *token.Issuer

	Users         store.UsersStore
	Resumes       store.ResumesStore
	Jobs          store.JobsStore
	Templates     store.TemplatesStore
	Personas      store.PersonasStore
	Conversations store.ConversationsStore
	Analyses      store.AnalysesStore
	Stats         store.StatsStore
	Health        store.HealthStore

	// Optional integrations, nil unless wired by the command layer.
	Storage storage.Backend
	Queue   *queue.Publisher
	AI      ai.Provider

	Matcher *match.Engine
	Coach   *rocket.Engine

	srv *http.Server
}

func NewServer(
	cfg *config.RocketConfig,
	db *gorm.DB,
	tokens *token.Issuer,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	srv := &http.Server{
		Handler: cors(handlers.LoggingHandler(os.Stdout, router)),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:        router,
		DB:            db,
		Config:        cfg,
		Tokens:        tokens,
		Users:         gormstore.NewUsersStore(db),
		Resumes:       gormstore.NewResumesStore(db),
		Jobs:          gormstore.NewJobsStore(db),
		Templates:     gormstore.NewTemplatesStore(db),
		Personas:      gormstore.NewPersonasStore(db),
		Conversations: gormstore.NewConversationsStore(db),
		Analyses:      gormstore.NewAnalysesStore(db),
		Stats:         gormstore.NewStatsStore(db),
		Health:        gormstore.NewHealthStore(db),
		Matcher:       match.New(),
		Coach:         rocket.NewEngine(),
		srv:           srv,
	}
}

// UseStorage wires the resume file backend.
func (s *Server) UseStorage(backend storage.Backend) {
	s.Storage = backend
}

// UseQueue wires the analysis request publisher.
func (s *Server) UseQueue(publisher *queue.Publisher) {
	s.Queue = publisher
}

// UseProvider wires an AI provider and rebuilds the engines around it.
func (s *Server) UseProvider(provider ai.Provider) {
	s.AI = provider
	s.Matcher = match.New(match.WithProvider(provider))
	s.Coach = rocket.NewEngine(rocket.WithProvider(provider))
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}

// StartWithListener serves on an existing listener. Test harnesses use
// it to run on a dynamically allocated port.
func (s Server) StartWithListener(l net.Listener) error {
	return s.srv.Serve(l)
}
