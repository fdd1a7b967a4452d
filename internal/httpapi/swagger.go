//go:build swagger

package httpapi

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
)

// SwaggerInfo describes the API for the swagger UI.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "reactd API",
	Description:      "Activity events, page visibility and idle state for a reactive timer runtime.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// MountSwagger serves the swagger UI under /swagger/.
func MountSwagger(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/events/{name}": {
            "post": {
                "tags": ["events"],
                "summary": "Dispatch an activity event",
                "parameters": [
                    {"type": "string", "name": "name", "in": "path", "required": true},
                    {"name": "body", "in": "body", "schema": {"$ref": "#/definitions/types.EventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.EventResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/visibility": {
            "put": {
                "tags": ["visibility"],
                "summary": "Set page visibility",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.VisibilityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.VisibilityResponse"}}
                }
            }
        },
        "/idle": {
            "get": {
                "tags": ["idle"],
                "summary": "Idle state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.IdleResponse"}}
                }
            }
        },
        "/idle/threshold": {
            "put": {
                "tags": ["idle"],
                "summary": "Change the idle threshold",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ThresholdRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.IdleResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/status": {
            "get": {
                "tags": ["status"],
                "summary": "Daemon status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.EventRequest": {"type": "object", "properties": {"key": {"type": "string"}, "width": {"type": "integer"}, "height": {"type": "integer"}}},
        "types.EventResponse": {"type": "object", "properties": {"event": {"type": "string"}, "listeners": {"type": "integer"}}},
        "types.VisibilityRequest": {"type": "object", "properties": {"hidden": {"type": "boolean"}}},
        "types.VisibilityResponse": {"type": "object", "properties": {"hidden": {"type": "boolean"}, "changed": {"type": "boolean"}}},
        "types.ThresholdRequest": {"type": "object", "properties": {"threshold_ms": {"type": "integer"}}},
        "types.IdleResponse": {"type": "object", "properties": {"detector": {"type": "string"}, "idle": {"type": "boolean"}, "threshold_ms": {"type": "integer"}, "changed_at_unix": {"type": "integer"}}},
        "types.StatusResponse": {"type": "object", "properties": {"state": {"type": "string"}, "hidden": {"type": "boolean"}, "events_total": {"type": "integer"}, "uptime_seconds": {"type": "integer"}, "server_time_unix": {"type": "integer"}}},
        "types.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "code": {"type": "integer"}}}
    }
}`
