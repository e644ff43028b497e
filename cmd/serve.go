package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/content"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/pages"
)

const reloadDebounce = 500 * time.Millisecond

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site and watches the content directory",
	Long: `The serve command starts the web server. Pages are rendered on request,
CSV resources are served from the static directory, and the community feed
is reloaded in the background. Markdown changes under the content directory
are picked up without a restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			appConfig.Port = serverPort
		}

		s, closeStorage, err := newSite(appConfig, siteData, content.NewLoader(appConfig.ResourceURL()))
		if err != nil {
			return err
		}
		defer closeStorage()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		watcher, err := watchContent(s.Markdown)
		if err != nil {
			return err
		}
		defer watcher.Close()

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", appConfig.Port),
			Handler:           s.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Errorf("shutdown: %v", err)
			}
		}()

		// Listen before polling: by default the feed is fetched from this server.
		ln, err := net.Listen("tcp", server.Addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", server.Addr, err)
		}
		go s.Feed.Poll(ctx, appConfig.PollInterval)

		log.Noticef("serving %s on http://localhost%s", appConfig.SiteTitle, server.Addr)
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	},
}

// watchContent reloads the markdown collection after changes settle.
func watchContent(md *pages.Markdown) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	go func() {
		var reloadTimer *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
					continue
				}
				log.Debugf("change detected: %s (%s)", event.Name, event.Op)
				if event.Has(fsnotify.Create) && isDir(event.Name) {
					if err := watcher.Add(event.Name); err != nil {
						log.Warningf("failed to watch %s: %v", event.Name, err)
					}
				}
				if reloadTimer != nil {
					reloadTimer.Stop()
				}
				reloadTimer = time.AfterFunc(reloadDebounce, func() {
					if err := md.Reload(); err != nil {
						log.Errorf("reloading content: %v", err)
						return
					}
					log.Info("content reloaded")
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Errorf("watcher: %v", err)
			}
		}
	}()

	root := md.Dir()
	if _, err := os.Stat(root); os.IsNotExist(err) {
		log.Warningf("content directory '%s' not found, not watching", root)
		return watcher, nil
	}
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Warningf("walking %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				log.Warningf("failed to watch %s: %v", path, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Warningf("watching %s: %v", root, err)
	}
	return watcher, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
