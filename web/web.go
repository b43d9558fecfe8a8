// Package web provides the web server of the registration site, including
// routing, templates, sessions and background job scheduling.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/cadastro/disciplinas/config"
	"github.com/cadastro/disciplinas/logger"
	"github.com/cadastro/disciplinas/util/common"
	"github.com/cadastro/disciplinas/web/cache"
	"github.com/cadastro/disciplinas/web/controller"
	"github.com/cadastro/disciplinas/web/job"
	"github.com/cadastro/disciplinas/web/locale"
	"github.com/cadastro/disciplinas/web/middleware"
	"github.com/cadastro/disciplinas/web/service"
	"github.com/cadastro/disciplinas/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

//go:embed assets
var assetsFS embed.FS

//go:embed html
var htmlFS embed.FS

//go:embed translation/*
var i18nFS embed.FS

const timeFormat = "02/01/2006 15:04:05 MST"

var startTime = time.Now()

type wrapAssetsFS struct {
	embed.FS
}

func (f *wrapAssetsFS) Open(name string) (fs.File, error) {
	file, err := f.FS.Open("assets/" + name)
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFile{File: file}, nil
}

type wrapAssetsFile struct {
	fs.File
}

func (f *wrapAssetsFile) Stat() (fs.FileInfo, error) {
	info, err := f.File.Stat()
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFileInfo{FileInfo: info}, nil
}

// wrapAssetsFileInfo reports the process start as modification time so
// embedded assets get a usable Last-Modified header.
type wrapAssetsFileInfo struct {
	fs.FileInfo
}

func (f *wrapAssetsFileInfo) ModTime() time.Time {
	return startTime
}

// Server is the web server. It owns the services built on the database
// handle it was given, but not the handle itself.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	db                *gorm.DB
	redis             *cache.Redis
	translator        *locale.Translator
	disciplineService *service.DisciplineService

	index       *controller.IndexController
	disciplines *controller.DisciplineController
	errorPages  *controller.ErrorController

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a server for db with a cancellable context.
func NewServer(db *gorm.DB) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		db:                db,
		disciplineService: service.NewDisciplineService(db),
		ctx:               ctx,
		cancel:            cancel,
	}
}

func (s *Server) funcMap() template.FuncMap {
	return template.FuncMap{
		"i18n": func(l *i18n.Localizer, key string, params ...string) string {
			return locale.I18n(l, key, params...)
		},
		"formatTime": func(t time.Time) string {
			return t.Format(timeFormat)
		},
	}
}

// getHtmlFiles lists the templates under the local web/html directory.
// Used only in debug mode so edits show up without a rebuild.
func (s *Server) getHtmlFiles() ([]string, error) {
	files := make([]string, 0)
	dir, _ := os.Getwd()
	err := fs.WalkDir(os.DirFS(dir), "web/html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// getHtmlTemplate parses every directory of the embedded html tree.
func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(htmlFS, "html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			newT, err := t.ParseFS(htmlFS, path+"/*.html")
			if err != nil {
				// ignore folders without matches
				return nil
			}
			t = newT
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// newSessionStore returns the cookie store, or the Redis store when
// configured.
func (s *Server) newSessionStore() (sessions.Store, error) {
	secret := []byte(config.GetSecret())
	var store sessions.Store
	switch config.GetSessionStore() {
	case config.SessionStoreRedis:
		r, err := cache.NewRedis(s.ctx, config.GetRedisAddr())
		if err != nil {
			return nil, err
		}
		s.redis = r
		store = cache.NewRedisStore(r.Client(), secret)
	default:
		store = cookie.NewStore(secret)
	}
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// initRouter initializes gin, registers middleware, templates, static
// assets and controllers, and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	translator, err := locale.NewTranslator(i18nFS)
	if err != nil {
		return nil, err
	}
	s.translator = translator

	store, err := s.newSessionStore()
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	s.errorPages = controller.NewErrorController(engine)

	engine.Use(gin.CustomRecovery(s.errorPages.Recover))
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.AccessLogMiddleware())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(sessions.Sessions(session.Name, store))
	engine.Use(translator.Middleware())

	funcMap := s.funcMap()
	engine.SetFuncMap(funcMap)

	if config.IsDebug() {
		files, err := s.getHtmlFiles()
		if err != nil {
			return nil, err
		}
		engine.LoadHTMLFiles(files...)
		engine.StaticFS("/assets", http.FS(os.DirFS("web/assets")))
	} else {
		tpl, err := s.getHtmlTemplate(funcMap)
		if err != nil {
			return nil, err
		}
		engine.SetHTMLTemplate(tpl)
		engine.StaticFS("/assets", http.FS(&wrapAssetsFS{FS: assetsFS}))
	}

	g := engine.Group("/")
	s.index = controller.NewIndexController(g)
	s.disciplines = controller.NewDisciplineController(g, s.disciplineService)

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	spec := config.GetCheckpointCron()
	if _, err := s.cron.AddJob(spec, job.NewCheckpointJob(s.db)); err != nil {
		logger.Warningf("add checkpoint job with spec %q failed: %v", spec, err)
	}
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server stopped:", err)
		}
	}()

	s.startTask()
	return nil
}

// Stop shuts down the HTTP server, the cron jobs and the session backend.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2, err3 error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err1 = s.httpServer.Shutdown(ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
		if isClosedErr(err2) {
			err2 = nil
		}
	}
	if s.redis != nil {
		err3 = s.redis.Close()
	}
	return common.Combine(err1, err2, err3)
}

func isClosedErr(err error) bool {
	return err != nil && errors.Is(err, net.ErrClosed)
}

// Addr returns the listening address once the server is started.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }

// GetCron returns the server's cron scheduler instance.
func (s *Server) GetCron() *cron.Cron { return s.cron }
