package audit

import (
	"net/http"
	"strings"
)

// ActionResource is the audit action and resource derived from an HTTP route.
type ActionResource struct {
	Action   string
	Resource string
}

// routeOverrides name actions that the method alone would get wrong.
var routeOverrides = map[string]ActionResource{
	"POST /v1/auth/register":               {Action: "register", Resource: "account"},
	"POST /v1/auth/login":                  {Action: "login", Resource: "account"},
	"DELETE /v1/account":                   {Action: "delete", Resource: "account"},
	"GET /v1/profile":                      {Action: "get", Resource: "profile"},
	"GET /v1/goals":                        {Action: "get", Resource: "goals"},
	"PUT /v1/goals":                        {Action: "update", Resource: "goals"},
	"POST /v1/onboarding":                  {Action: "complete", Resource: "onboarding"},
	"POST /v1/calc":                        {Action: "calculate", Resource: "calculator"},
	"GET /v1/measurements/export":          {Action: "export", Resource: "measurement"},
	"GET /v1/measurements/latest":          {Action: "get", Resource: "measurement"},
	"GET /v1/nutrition/logs":               {Action: "list", Resource: "nutrition_log"},
	"POST /v1/nutrition/logs":              {Action: "create", Resource: "nutrition_log"},
	"DELETE /v1/nutrition/logs/:id":        {Action: "delete", Resource: "nutrition_log"},
	"GET /v1/nutrition/summary":            {Action: "get", Resource: "nutrition_summary"},
	"GET /v1/nutrition/presets":            {Action: "list", Resource: "meal_preset"},
	"POST /v1/nutrition/presets":           {Action: "create", Resource: "meal_preset"},
	"POST /v1/nutrition/presets/:id/apply": {Action: "apply", Resource: "meal_preset"},
	"DELETE /v1/nutrition/presets/:id":     {Action: "delete", Resource: "meal_preset"},
}

// ParseRoute maps an HTTP method and a gin route template (e.g. /v1/measurements/:id)
// to an action and resource. The resource is the singular of the last static segment;
// the action follows the method, with GET on a collection reported as list.
func ParseRoute(method, route string) ActionResource {
	if ar, ok := routeOverrides[method+" "+route]; ok {
		return ar
	}
	segs := strings.Split(strings.Trim(route, "/"), "/")
	resource := ""
	hasID := false
	for _, s := range segs {
		switch {
		case s == "" || s == "v1":
		case strings.HasPrefix(s, ":") || strings.HasPrefix(s, "*"):
			hasID = true
		default:
			resource = s
			hasID = false
		}
	}
	if resource == "" {
		return ActionResource{Action: "unknown", Resource: "unknown"}
	}
	resource = singular(strings.ReplaceAll(resource, "-", "_"))
	return ActionResource{Action: methodToAction(method, hasID), Resource: resource}
}

func singular(s string) string {
	switch {
	case strings.HasSuffix(s, "ies"):
		return strings.TrimSuffix(s, "ies") + "y"
	case strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss"):
		return strings.TrimSuffix(s, "s")
	}
	return s
}

func methodToAction(method string, hasID bool) string {
	switch method {
	case http.MethodGet:
		if hasID {
			return "get"
		}
		return "list"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return strings.ToLower(method)
	}
}
