// Package cdshooks serves decision-support services over the CDS Hooks 2.0
// REST API: discovery, hook invocation and card feedback.
package cdshooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Card indicators, most urgent last.
const (
	IndicatorInfo     = "info"
	IndicatorWarning  = "warning"
	IndicatorCritical = "critical"
)

// Service describes a single service returned in discovery.
type Service struct {
	Hook              string            `json:"hook"`
	Title             string            `json:"title,omitempty"`
	Description       string            `json:"description"`
	ID                string            `json:"id"`
	Prefetch          map[string]string `json:"prefetch,omitempty"`
	UsageRequirements string            `json:"usageRequirements,omitempty"`
}

// Request is the payload POSTed to invoke a hook.
type Request struct {
	Hook         string                 `json:"hook"`
	HookInstance string                 `json:"hookInstance"`
	FHIRServer   string                 `json:"fhirServer,omitempty"`
	Context      map[string]interface{} `json:"context"`
	Prefetch     map[string]interface{} `json:"prefetch,omitempty"`
}

// ContextString returns a string field of the hook context.
func (r Request) ContextString(key string) string {
	s, _ := r.Context[key].(string)
	return s
}

// ContextStrings returns a string-array field of the hook context. Non-string
// elements are skipped.
func (r Request) ContextStrings(key string) []string {
	raw, _ := r.Context[key].([]interface{})
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// DraftOrderMedications returns the medication names of the MedicationRequest
// entries in the draftOrders bundle, taken from medicationCodeableConcept text
// or the first coding display.
func (r Request) DraftOrderMedications() []string {
	bundle, _ := r.Context["draftOrders"].(map[string]interface{})
	entries, _ := bundle["entry"].([]interface{})
	var names []string
	for _, e := range entries {
		entry, _ := e.(map[string]interface{})
		res, _ := entry["resource"].(map[string]interface{})
		if rt, _ := res["resourceType"].(string); rt != "MedicationRequest" {
			continue
		}
		if name := conceptName(res["medicationCodeableConcept"]); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func conceptName(v interface{}) string {
	concept, _ := v.(map[string]interface{})
	if text, _ := concept["text"].(string); text != "" {
		return text
	}
	codings, _ := concept["coding"].([]interface{})
	for _, c := range codings {
		coding, _ := c.(map[string]interface{})
		if display, _ := coding["display"].(string); display != "" {
			return display
		}
	}
	return ""
}

// Card is a single card in the hook response.
type Card struct {
	UUID              string       `json:"uuid,omitempty"`
	Summary           string       `json:"summary"`
	Detail            string       `json:"detail,omitempty"`
	Indicator         string       `json:"indicator"`
	Source            Source       `json:"source"`
	Suggestions       []Suggestion `json:"suggestions,omitempty"`
	Links             []Link       `json:"links,omitempty"`
	OverrideReasons   []Coding     `json:"overrideReasons,omitempty"`
	SelectionBehavior string       `json:"selectionBehavior,omitempty"`
}

// Source identifies the source of a card.
type Source struct {
	Label string  `json:"label"`
	URL   string  `json:"url,omitempty"`
	Icon  string  `json:"icon,omitempty"`
	Topic *Coding `json:"topic,omitempty"`
}

type Suggestion struct {
	Label         string   `json:"label"`
	UUID          string   `json:"uuid,omitempty"`
	IsRecommended bool     `json:"isRecommended,omitempty"`
	Actions       []Action `json:"actions,omitempty"`
}

type Action struct {
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Resource    interface{} `json:"resource,omitempty"`
}

type Link struct {
	Label      string `json:"label"`
	URL        string `json:"url"`
	Type       string `json:"type"`
	AppContext string `json:"appContext,omitempty"`
}

type Coding struct {
	Code    string `json:"code"`
	System  string `json:"system,omitempty"`
	Display string `json:"display,omitempty"`
}

// Response is returned from hook invocation.
type Response struct {
	Cards         []Card   `json:"cards"`
	SystemActions []Action `json:"systemActions,omitempty"`
}

// Feedback records what the user did with a card.
type Feedback struct {
	Card             string   `json:"card"`
	Outcome          string   `json:"outcome"`
	OverrideReasons  []Coding `json:"overrideReasons,omitempty"`
	OutcomeTimestamp string   `json:"outcomeTimestamp,omitempty"`
}

// ServiceFunc processes a hook request and returns cards.
type ServiceFunc func(ctx context.Context, req Request) (*Response, error)

// FeedbackFunc processes feedback for a service.
type FeedbackFunc func(ctx context.Context, serviceID string, fb Feedback) error

// Handler implements the CDS Hooks REST API over registered services.
type Handler struct {
	services map[string]Service
	handlers map[string]ServiceFunc
	feedback map[string]FeedbackFunc
	order    []string
}

func NewHandler() *Handler {
	return &Handler{
		services: make(map[string]Service),
		handlers: make(map[string]ServiceFunc),
		feedback: make(map[string]FeedbackFunc),
	}
}

// RegisterService registers a service and its handler. Registering an id
// again replaces the service but keeps its discovery position.
func (h *Handler) RegisterService(svc Service, fn ServiceFunc) {
	if _, exists := h.services[svc.ID]; !exists {
		h.order = append(h.order, svc.ID)
	}
	h.services[svc.ID] = svc
	h.handlers[svc.ID] = fn
}

func (h *Handler) RegisterFeedback(serviceID string, fn FeedbackFunc) {
	h.feedback[serviceID] = fn
}

// RegisterRoutes registers the CDS Hooks routes on the root Echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/cds-services", h.Discovery)
	e.POST("/cds-services/:id", h.HandleHook)
	e.POST("/cds-services/:id/feedback", h.HandleFeedback)
}

func (h *Handler) Discovery(c echo.Context) error {
	services := make([]Service, 0, len(h.order))
	for _, id := range h.order {
		services = append(services, h.services[id])
	}
	return c.JSON(http.StatusOK, map[string][]Service{"services": services})
}

func (h *Handler) HandleHook(c echo.Context) error {
	serviceID := c.Param("id")
	svc, ok := h.services[serviceID]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("CDS service %q not found", serviceID))
	}

	var req Request
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}
	if req.Hook != svc.Hook {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("hook mismatch: request hook %q does not match service hook %q", req.Hook, svc.Hook))
	}
	if req.HookInstance == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "hookInstance is required")
	}

	resp, err := h.handlers[serviceID](c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if resp == nil {
		resp = &Response{}
	}
	if resp.Cards == nil {
		resp.Cards = []Card{}
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) HandleFeedback(c echo.Context) error {
	serviceID := c.Param("id")
	if _, ok := h.services[serviceID]; !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("CDS service %q not found", serviceID))
	}

	var fb Feedback
	if err := json.NewDecoder(c.Request().Body).Decode(&fb); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid feedback body: %v", err))
	}

	// no feedback handler: accept and drop
	if fn, ok := h.feedback[serviceID]; ok {
		if err := fn(c.Request().Context(), serviceID, fb); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
