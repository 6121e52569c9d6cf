package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/karupanerura/pratt-calc/internal/expression"
	"github.com/karupanerura/pratt-calc/internal/types"
)

const basePath = "/v1/evaluations"

type evaluation struct {
	Name       string             `json:"name"`
	Expression string             `json:"expression"`
	Strict     bool               `json:"strict,omitempty"`
	AST        string             `json:"ast,omitempty"`
	Result     *expression.Number `json:"result,omitempty"`
	State      string             `json:"state"`
	Error      any                `json:"error,omitempty"`
	CreateTime time.Time          `json:"createTime"`
}

type evaluationRequest struct {
	Expression string `json:"expression"`
	Strict     bool   `json:"strict"`
}

type httpHandler struct {
	idBase      uint64
	evaluations sync.Map
	now         func() time.Time
}

func NewHTTPHandler() http.Handler {
	return &httpHandler{now: time.Now}
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == basePath {
		switch r.Method {
		case http.MethodGet:
			h.listEvaluations(w, r)
			return

		case http.MethodPost:
			h.createEvaluation(w, r)
			return

		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
	}

	id := strings.TrimPrefix(r.URL.Path, basePath+"/")
	if id == r.URL.Path || id == "" || strings.ContainsRune(id, '/') {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getEvaluation(w, r, id)
		return

	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
}

func (h *httpHandler) createEvaluation(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req evaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("failed to decode request body: %v", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id := fmt.Sprintf("%012x", atomic.AddUint64(&h.idBase, 1))
	ev := &evaluation{
		Name:       basePath + "/" + id,
		Expression: req.Expression,
		Strict:     req.Strict,
		CreateTime: h.now().UTC(),
	}
	h.evaluate(ev)

	h.evaluations.Store(id, ev)
	resJSON(w, http.StatusOK, ev)
}

func (h *httpHandler) evaluate(ev *evaluation) {
	parse := expression.Parse
	if ev.Strict {
		parse = expression.ParseStrict
	}

	expr, err := parse(ev.Expression)
	if err == nil {
		ev.AST = expr.Root.String()

		var v expression.Number
		v, err = expr.Evaluate()
		if err == nil {
			ev.Result = &v
			ev.State = "SUCCEEDED"
			return
		}
	}

	ev.State = "FAILED"
	var exception types.Exception
	if errors.As(err, &exception) {
		ev.Error = exception.Exception()
	} else {
		log.Printf("failed to evaluate expression: %v", err)
		ev.Error = err.Error()
	}
}

func (h *httpHandler) listEvaluations(w http.ResponseWriter, r *http.Request) {
	results := []*evaluation{}
	h.evaluations.Range(func(key, value any) bool {
		results = append(results, value.(*evaluation))
		return true
	})
	sort.Slice(results, func(i, j int) bool {
		if results[i].CreateTime.Equal(results[j].CreateTime) {
			return results[i].Name < results[j].Name
		}
		return results[i].CreateTime.Before(results[j].CreateTime)
	})

	resJSON(w, http.StatusOK, map[string][]*evaluation{"evaluations": results})
}

func (h *httpHandler) getEvaluation(w http.ResponseWriter, r *http.Request, id string) {
	ret, ok := h.evaluations.Load(id)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	resJSON(w, http.StatusOK, ret.(*evaluation))
}

func resJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("failed to encode response: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)+1))
	w.WriteHeader(status)

	if _, err = w.Write(b); err != nil {
		log.Printf("w.Write: %v", err)
		return
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		log.Printf("io.WriteString: %v", err)
	}
}
