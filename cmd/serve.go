package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/wfraser/pianoroll/midi"
	"github.com/wfraser/pianoroll/model"
	"github.com/wfraser/pianoroll/page"
	"github.com/wfraser/pianoroll/report"
)

var (
	serveAddr    string
	serveMixFile string
	serveFudge   uint64
)

// served holds the precomputed responses. The conversion is pure, so
// there is nothing to recompute per request.
var served struct {
	report model.ReportResponse
	page   []byte
	midi   []byte
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveMixFile, "mix", "", "YAML mix file naming the selections")
	serveCmd.Flags().Uint64Var(&serveFudge, "fudge", 0, "conflict fudge window in ticks (0 means a third of a beat)")
}

var serveCmd = &cobra.Command{
	Use:   "serve <input.mid> [track,channel[+shift]]... [/divisor]",
	Short: "Convert once and serve the report and artifacts over HTTP",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := Convert(Config{
			Input:      args[0],
			Args:       args[1:],
			MixFile:    serveMixFile,
			FudgeTicks: serveFudge,
		})
		if err != nil {
			return err
		}
		if err := LoadServeState(out); err != nil {
			return err
		}
		return serve()
	},
}

// LoadServeState renders everything the handlers return.
func LoadServeState(out *Output) error {
	served.report = report.JSON(out.Song, out.Divisor, out.Merged.Conflicts, out.RangeErrors, out.Roll)

	png, err := page.EncodePNG(out.Roll, page.Options{Title: filepath.Base(out.Song.Path)})
	if err != nil {
		return err
	}
	served.page = png

	var buf bytes.Buffer
	if err := midi.Encode(&buf, out.Notes, out.Song.TicksPerBeat, out.Song.TempoUS); err != nil {
		return err
	}
	served.midi = buf.Bytes()
	return nil
}

func HandleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(served.report)
}

func HandlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	w.Write(served.page)
}

func HandleMerged(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "audio/midi")
	w.Write(served.midi)
}

func serve() error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "serve"})

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/api/report", HandleReport).Methods("GET")
	router.HandleFunc("/page.png", HandlePage).Methods("GET")
	router.HandleFunc("/merged.mid", HandleMerged).Methods("GET")
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(model.ErrorResponse{Error: "not found"})
	})

	handler := cors.Default().Handler(logRequests(logger, router))
	logger.Info("listening", "addr", serveAddr)
	return http.ListenAndServe(serveAddr, handler)
}

func logRequests(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
