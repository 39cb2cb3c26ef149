package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"antiswear/pkg/censor"
	"antiswear/pkg/models"
	"antiswear/pkg/moderation"
)

type API struct {
	ServiceName string

	r      *mux.Router
	kw     *kafka.Writer
	censor *censor.Censor
	policy moderation.Policy
}

func New(name string, c *censor.Censor, policy moderation.Policy, kafkaWriter *kafka.Writer) (*API, error) {
	api := API{
		ServiceName: name,
		r:           mux.NewRouter(),
		kw:          kafkaWriter,
		censor:      c,
		policy:      policy,
	}
	api.endpoints()

	return &api, nil
}

func (api *API) Router() *mux.Router {
	return api.r
}

func (api *API) endpoints() {
	api.r.Use(api.requestIDMiddleware)
	api.r.Use(api.headerMiddleware)

	if api.kw != nil {
		api.r.Use(api.loggingMiddleware(api.kw))
	}

	api.r.HandleFunc("/check", api.checkComment).Methods(http.MethodPost)
	api.r.HandleFunc("/test", api.testText).Methods(http.MethodPost)
	api.r.HandleFunc("/dictionary", api.dictionaryStats).Methods(http.MethodGet)
}

// checkComment redacts a comment. Comments are rejected with 422 when the
// policy blocks censored comments.
func (api *API) checkComment(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	var comment models.Comment
	err := json.NewDecoder(r.Body).Decode(&comment)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Errorf("[checkComment][%s] failed to decode request body: %v", sID, err)
		return
	}
	defer r.Body.Close()

	verdict := api.policy.Judge(api.censor, comment)

	status := http.StatusOK
	switch {
	case verdict.Blocked:
		status = http.StatusUnprocessableEntity
		log.Infof("[checkComment][%s] comment %s blocked", sID, comment.ID)
	case verdict.Censored:
		log.Infof("[checkComment][%s] comment %s censored", sID, comment.ID)
	default:
		log.Debugf("[checkComment][%s] comment %s is clean", sID, comment.ID)
	}

	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(verdict); err != nil {
		log.Errorf("[checkComment][%s] failed to encode verdict: %v", sID, err)
	}
}

// testText reports the canonical forms of a text next to the processed result.
func (api *API) testText(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	var req TestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Errorf("[testText][%s] failed to decode request body: %v", sID, err)
		return
	}
	defer r.Body.Close()

	start := time.Now()
	result, changed, canonical := api.censor.ProcessCanonical(req.Text)
	elapsed := time.Since(start)

	if !changed {
		result = req.Text
	}
	diag := models.Diagnostic{
		Text:      req.Text,
		Canonical: canonical,
		Separated: censor.Normalize(req.Text, true).String(),
		Result:    result,
		Censored:  changed,
		ElapsedNs: elapsed.Nanoseconds(),
	}
	log.Debugf("[testText][%s] processed in %v, canonical: %s", sID, elapsed, canonical)

	if err := json.NewEncoder(w).Encode(diag); err != nil {
		log.Errorf("[testText][%s] failed to encode diagnostic: %v", sID, err)
	}
}

func (api *API) dictionaryStats(w http.ResponseWriter, r *http.Request) {
	d := api.censor.Dictionary()
	stats := DictionaryStats{
		Blacklist: d.Blacklisted(),
		Whitelist: d.Whitelisted(),
	}

	if err := json.NewEncoder(w).Encode(stats); err != nil {
		log.Errorf("[dictionaryStats][%s] failed to encode stats: %v", shorten(GetRequestID(r.Context())), err)
	}
}

// shorten truncates a string to 6 characters if it is longer than 6, appends '...' at the end,
// otherwise it returns the string unchanged.
func shorten(s string) string {
	if len(s) > 6 {
		return s[:6] + "..."
	}
	return s
}
