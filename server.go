package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"gregoryjjb/ive/cursor"
)

type BuildInfo struct {
	Version    string
	BuildTime  time.Time
	CommitHash string
}

/////////////////////
// Response helpers

func RespondInternalServiceError(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(err.Error()))
}

func RespondNotFoundError(w http.ResponseWriter, body string) {
	w.WriteHeader(http.StatusNotFound)
	if body == "" {
		body = "Not found"
	}
	RespondText(w, body)
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	RespondText(w, message)
}

func RespondText(w http.ResponseWriter, body string) {
	w.Write([]byte(body))
}

func RespondJSON(w http.ResponseWriter, body any) {
	w.Header().Add("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		RespondInternalServiceError(w, err)
	}
}

// RespondError picks a status code from the kind of error
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cursor.ErrNoCurrentElement):
		RespondNotFoundError(w, "no image selected")
	case errors.Is(err, cursor.ErrEmptyCursor):
		RespondNotFoundError(w, "no images to show")
	case errors.Is(err, ErrNotExist):
		RespondNotFoundError(w, err.Error())
	case errors.Is(err, ErrValidation):
		RespondBadRequest(w, err.Error())
	default:
		RespondInternalServiceError(w, err)
	}
}

type imageListing struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

type sortOrderListing struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

func NewRouter(buildInfo BuildInfo, viewer *Viewer, slideshow *Slideshow) http.Handler {
	r := chi.NewRouter()
	r.Use(LoggerMiddleware(&log.Logger))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		tmpl, err := indexTemplate()
		if err != nil {
			RespondInternalServiceError(w, err)
			return
		}

		data := IndexData{
			Version:    buildInfo.Version,
			Dir:        viewer.loader.Dir(),
			Count:      viewer.Len(),
			SortOrder:  viewer.SortOrder(),
			SortOrders: SortOrders,
		}
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render index")
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/images", func(w http.ResponseWriter, r *http.Request) {
			images := viewer.Images()
			listing := make([]imageListing, 0, len(images))
			for _, img := range images {
				listing = append(listing, imageListing{
					Name:     img.Name,
					Size:     img.Size,
					Modified: img.ModTime,
				})
			}
			RespondJSON(w, listing)
		})

		r.Get("/current", func(w http.ResponseWriter, r *http.Request) {
			info, err := viewer.CurrentInfo()
			if err != nil {
				RespondError(w, err)
				return
			}
			RespondJSON(w, info)
		})

		r.Get("/current/raw", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Cache-Control", "no-cache, no-store")

			img, _, err := viewer.Current()
			if err != nil {
				RespondError(w, err)
				return
			}

			f, err := viewer.loader.Open(img)
			if err != nil {
				RespondError(w, err)
				return
			}
			defer f.Close()

			http.ServeContent(w, r, img.Name, img.ModTime, f)
		})

		r.Delete("/current", func(w http.ResponseWriter, r *http.Request) {
			if _, err := viewer.Remove(); err != nil {
				RespondError(w, err)
				return
			}
			respondCurrent(w, viewer)
		})

		r.Post("/next", func(w http.ResponseWriter, r *http.Request) {
			info, err := viewer.Next()
			if err != nil {
				RespondError(w, err)
				return
			}
			RespondJSON(w, info)
		})

		r.Post("/previous", func(w http.ResponseWriter, r *http.Request) {
			info, err := viewer.Previous()
			if err != nil {
				RespondError(w, err)
				return
			}
			RespondJSON(w, info)
		})

		r.Post("/reset", func(w http.ResponseWriter, r *http.Request) {
			viewer.Reset()
			w.WriteHeader(http.StatusNoContent)
		})

		r.Post("/reload", func(w http.ResponseWriter, r *http.Request) {
			if err := viewer.Load(); err != nil {
				RespondError(w, err)
				return
			}
			respondCurrent(w, viewer)
		})

		r.Get("/sort", func(w http.ResponseWriter, r *http.Request) {
			current := viewer.SortOrder()
			listing := make([]sortOrderListing, 0, len(SortOrders))
			for _, order := range SortOrders {
				listing = append(listing, sortOrderListing{
					Key:      order.String(),
					Name:     order.MenuName(),
					Selected: order == current,
				})
			}
			RespondJSON(w, listing)
		})

		r.Put("/sort/{order}", func(w http.ResponseWriter, r *http.Request) {
			order, err := ParseSortOrder(chi.URLParam(r, "order"))
			if err != nil {
				RespondError(w, err)
				return
			}
			if err := viewer.SetSortOrder(order); err != nil {
				RespondError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Get("/history", func(w http.ResponseWriter, r *http.Request) {
			history := viewer.History()
			if history == nil {
				history = []string{}
			}
			RespondJSON(w, history)
		})

		r.Get("/export", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/zip")
			w.Header().Set("Content-Disposition", `attachment; filename="ive-export.zip"`)
			if err := viewer.Export(w); err != nil {
				// Headers are likely gone already, all we can do is log
				log.Err(err).Msg("Export failed")
			}
		})

		r.Get("/slideshow", func(w http.ResponseWriter, r *http.Request) {
			RespondJSON(w, slideshow.Status())
		})

		r.Post("/slideshow/start", func(w http.ResponseWriter, r *http.Request) {
			if d := r.URL.Query().Get("interval"); d != "" {
				interval, err := time.ParseDuration(d)
				if err != nil || interval <= 0 {
					RespondBadRequest(w, fmt.Sprintf("invalid interval %q", d))
					return
				}
				slideshow.SetInterval(interval)
			}
			slideshow.Start()
			w.WriteHeader(http.StatusNoContent)
		})

		r.Post("/slideshow/stop", func(w http.ResponseWriter, r *http.Request) {
			slideshow.Stop()
			w.WriteHeader(http.StatusNoContent)
		})

		r.Get("/events", createWebsocketHandler(viewer))

		r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			RespondJSON(w, map[string]string{
				"version":     buildInfo.Version,
				"build_time":  buildInfo.BuildTime.Format(time.RFC3339),
				"commit_hash": buildInfo.CommitHash,
			})
		})
	})

	return r
}

// respondCurrent writes the current image, or 204 when nothing is selected
func respondCurrent(w http.ResponseWriter, viewer *Viewer) {
	_, info, err := viewer.Current()
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	RespondJSON(w, info)
}

// StartServer serves the API until ctx is cancelled
func StartServer(ctx context.Context, config *Config, buildInfo BuildInfo, viewer *Viewer, slideshow *Slideshow) error {
	server := &http.Server{
		Addr:    config.Address(),
		Handler: NewRouter(buildInfo, viewer, slideshow),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Err(err).Msg("Server shutdown failed")
		}
	}()

	log.Info().Str("listen", server.Addr).Msg("launching server")
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
