package webhook

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v60/github"

	"github.com/jadenj13/jirasync/internals/jirasync"
)

// Runner is the part of Worker the server needs.
type Runner interface {
	HandlePR(ctx context.Context, repoURL string, pr jirasync.PullRequest) (Result, error)
}

type Server struct {
	runner       Runner
	githubSecret string
	gitlabSecret string
	log          *slog.Logger
}

func NewServer(runner Runner, githubSecret, gitlabSecret string, log *slog.Logger) *Server {
	return &Server{
		runner:       runner,
		githubSecret: githubSecret,
		gitlabSecret: gitlabSecret,
		log:          log,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook/github", s.handleGitHub)
	mux.HandleFunc("/webhook/gitlab", s.handleGitLab)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

var githubActions = map[string]bool{
	"opened":      true,
	"edited":      true,
	"reopened":    true,
	"synchronize": true,
}

func (s *Server) handleGitHub(w http.ResponseWriter, r *http.Request) {
	body, err := github.ValidatePayload(r, []byte(s.githubSecret))
	if err != nil {
		s.log.Warn("github webhook verify failed", "err", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	event, err := github.ParseWebHook(github.WebHookType(r), body)
	if err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	ev, ok := event.(*github.PullRequestEvent)
	if !ok || !githubActions[ev.GetAction()] {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	pr := jirasync.PullRequest{
		Title:  ev.GetPullRequest().GetTitle(),
		Body:   ev.GetPullRequest().GetBody(),
		Number: ev.GetNumber(),
	}
	s.dispatch(ev.GetRepo().GetHTMLURL(), pr)

	w.WriteHeader(http.StatusAccepted)
}

type gitlabMRPayload struct {
	ObjectKind       string `json:"object_kind"`
	ObjectAttributes struct {
		IID         int    `json:"iid"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Action      string `json:"action"`
	} `json:"object_attributes"`
	Project struct {
		WebURL string `json:"web_url"`
	} `json:"project"`
}

var gitlabActions = map[string]bool{
	"open":   true,
	"reopen": true,
	"update": true,
}

func (s *Server) handleGitLab(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("x-gitlab-token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.gitlabSecret)) != 1 {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read error", http.StatusBadRequest)
		return
	}

	var payload gitlabMRPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	if payload.ObjectKind != "merge_request" || !gitlabActions[payload.ObjectAttributes.Action] {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	pr := jirasync.PullRequest{
		Title:  payload.ObjectAttributes.Title,
		Body:   payload.ObjectAttributes.Description,
		Number: payload.ObjectAttributes.IID,
	}
	s.dispatch(payload.Project.WebURL, pr)

	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) dispatch(repoURL string, pr jirasync.PullRequest) {
	go func() {
		ctx := context.Background()
		if _, err := s.runner.HandlePR(ctx, repoURL, pr); err != nil {
			s.log.Error("jira sync failed", "repo", repoURL, "pr", pr.Number, "err", err)
		}
	}()
}
