// Package fileserver serves a directory tree over HTTP with client-side
// caching disabled on every response. Path resolution, MIME type inference,
// conditional requests, and traversal containment are delegated to
// net/http's file server.
package fileserver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"path"

	motmedelErrors "github.com/Motmedel/nocache_httpd_go/pkg/errors"
	fileserverErrors "github.com/Motmedel/nocache_httpd_go/pkg/http/fileserver/errors"
	"github.com/Motmedel/nocache_httpd_go/pkg/http/fileserver/fileserver_config"
	"github.com/Motmedel/nocache_httpd_go/pkg/http/nocache"
	"github.com/Motmedel/nocache_httpd_go/pkg/http/requestid"
	"go.uber.org/multierr"
)

type Server struct {
	Address string
	Root    string
}

func New(options ...fileserver_config.Option) *Server {
	config := fileserver_config.New(options...)
	return &Server{Address: config.Address, Root: config.Root}
}

// MakeAnnouncement renders the startup line for a bound address.
func MakeAnnouncement(address string) (string, error) {
	_, port, err := net.SplitHostPort(address)
	if err != nil {
		return "", motmedelErrors.New(fmt.Errorf("net split host port: %w", err), address)
	}

	return fmt.Sprintf("Server running at http://localhost:%s/", port), nil
}

// serveIndexFile serves a path whose final element is index.html as an
// ordinary file. http.FileServer and http.ServeFile both redirect such paths
// to their directory; the request must get the file's bytes instead.
// fileSystem keeps path resolution contained to the served root.
func serveIndexFile(fileSystem http.FileSystem, responseWriter http.ResponseWriter, request *http.Request) {
	requestPath := path.Clean("/" + request.URL.Path)

	file, err := fileSystem.Open(requestPath)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			http.Error(responseWriter, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		http.NotFound(responseWriter, request)
		return
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil || fileInfo.IsDir() {
		http.NotFound(responseWriter, request)
		return
	}

	http.ServeContent(responseWriter, request, fileInfo.Name(), fileInfo.ModTime(), file)
}

// Handler composes the request-handling chain. The no-cache wrapper sits
// outermost so that every response passes through its header finalization.
func (server *Server) Handler() http.Handler {
	root := server.Root
	if root == "" {
		root = fileserver_config.DefaultRoot
	}

	fileSystem := http.Dir(root)
	fileServer := http.FileServer(fileSystem)

	handler := http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		if path.Base(request.URL.Path) == "index.html" {
			serveIndexFile(fileSystem, responseWriter, request)
			return
		}

		fileServer.ServeHTTP(responseWriter, request)
	})

	return nocache.Middleware(requestid.Middleware(handler))
}

// Run binds the listening socket, announces the address on stdout, and serves
// until the listener fails or ctx is done. A bind failure is returned
// immediately; it is the caller's only fatal error path.
func (server *Server) Run(ctx context.Context) error {
	if server == nil {
		return motmedelErrors.NewWithTrace(fileserverErrors.ErrNilServer)
	}

	address := server.Address
	if address == "" {
		address = fileserver_config.DefaultAddress
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return motmedelErrors.New(fmt.Errorf("net listen: %w", err), address)
	}

	announcement, err := MakeAnnouncement(listener.Addr().String())
	if err != nil {
		return multierr.Append(fmt.Errorf("make announcement: %w", err), listener.Close())
	}
	fmt.Println(announcement)

	httpServer := &http.Server{Handler: server.Handler()}

	serveErrorChannel := make(chan error, 1)
	go func() {
		serveErrorChannel <- httpServer.Serve(listener)
	}()

	select {
	case serveErr := <-serveErrorChannel:
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return motmedelErrors.New(fmt.Errorf("http server serve: %w", serveErr), address)
		}
		return nil
	case <-ctx.Done():
		shutdownErr := httpServer.Shutdown(context.Background())

		serveErr := <-serveErrorChannel
		if errors.Is(serveErr, http.ErrServerClosed) {
			serveErr = nil
		}

		if combinedErr := multierr.Append(shutdownErr, serveErr); combinedErr != nil {
			return motmedelErrors.New(fmt.Errorf("http server shutdown: %w", combinedErr))
		}
		return nil
	}
}

func (server *Server) ListenAndServe() error {
	return server.Run(context.Background())
}
