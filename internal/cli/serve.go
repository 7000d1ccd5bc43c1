package cli

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wheelhouse/pkg/errors"
	"github.com/matzehuels/wheelhouse/pkg/mirror"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	dir  string // download directory to serve
	addr string // listen address
}

// serveCommand creates the serve command. It exposes a download
// directory as a flat package index that pip can install from over the
// network with --find-links.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a download directory as a local package index",
		Long: `Serve a download directory over HTTP as a flat package index.

The index page lists every wheel in the directory as a link, which is
the format pip expects for --find-links URLs. Other machines on the
network can then install without direct PyPI access:

  pip install --no-index --find-links http://<host>:8080/ <package>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "download directory to serve")
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	if _, err := mirror.Scan(opts.dir); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           indexRouter(opts.dir, c),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	printInfo("Serving %s on %s", opts.dir, opts.addr)
	printNextStep("Install from another machine", fmt.Sprintf("pip install --no-index --find-links http://<host>%s/ <package>", opts.addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.ErrCodeNetwork, err, "serving %s", opts.addr)
		}
		return nil
	}
}

// indexRouter builds the HTTP routes for the package index.
func indexRouter(dir string, c *CLI) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			c.Logger.Debugf("%s %s from %s", req.Method, req.URL.Path, req.RemoteAddr)
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		wheels, err := mirror.Scan(dir)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<!DOCTYPE html><html><body>\n")
		for _, wheel := range wheels {
			name := filepath.Base(wheel)
			fmt.Fprintf(w, `<a href="%s">%s</a><br/>`+"\n", html.EscapeString(name), html.EscapeString(name))
		}
		fmt.Fprint(w, "</body></html>\n")
	})

	r.Get("/{wheel}", func(w http.ResponseWriter, req *http.Request) {
		// Base strips any path traversal out of the requested name.
		name := filepath.Base(chi.URLParam(req, "wheel"))
		if filepath.Ext(name) != ".whl" {
			http.NotFound(w, req)
			return
		}
		http.ServeFile(w, req, filepath.Join(dir, name))
	})

	return r
}
