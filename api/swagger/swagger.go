package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "AiNa Calendar API",
        "description": "Event aggregation engine: automatic French holidays and commercial dates merged with user and local events",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Events", "description": "Merged calendar views and user events"},
        {"name": "Hidden events", "description": "Dismissed suggestions"},
        {"name": "Export", "description": "iCalendar, CSV and PDF exports, subscription feeds"},
        {"name": "Ops", "description": "Health and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {"tags": ["Ops"], "summary": "Liveness check", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {"tags": ["Ops"], "summary": "Readiness check", "responses": {"200": {"description": "Ready"}, "503": {"description": "A dependency is down"}}}
        },
        "/metrics/summary": {
            "get": {"tags": ["Ops"], "summary": "JSON metrics snapshot", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/events/upcoming": {
            "get": {
                "tags": ["Events"],
                "summary": "Upcoming events for the dashboard",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "days", "in": "query", "type": "integer", "description": "Window length in days (default 30, max 366)"},
                    {"name": "limit", "in": "query", "type": "integer", "description": "Maximum number of events"},
                    {"name": "all", "in": "query", "type": "boolean", "description": "Include events without a post suggestion"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CalendarEnvelope"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/events/calendar": {
            "get": {
                "tags": ["Events"],
                "summary": "Merged calendar between two dates, the current month by default",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string", "format": "date"},
                    {"name": "end_date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CalendarEnvelope"}},
                    "400": {"description": "Invalid range", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/events/year/{year}": {
            "get": {
                "tags": ["Events"],
                "summary": "Automatic events of a year",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "year", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Year out of range", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List the user's events",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string", "format": "date"},
                    {"name": "end_date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Events"],
                "summary": "Add an event to the user's calendar",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ManualEventPayload"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/events/{id}": {
            "get": {
                "tags": ["Events"],
                "summary": "Get one of the user's events",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Events"],
                "summary": "Update one of the user's events",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ManualEventPayload"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Events"],
                "summary": "Delete one of the user's events",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found"}}
            }
        },
        "/api/v1/events/hidden": {
            "get": {
                "tags": ["Hidden events"],
                "summary": "List dismissed suggestions",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Hidden events"],
                "summary": "Dismiss a suggested event",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HideEventRequest"}}],
                "responses": {
                    "201": {"description": "Hidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload or manual event", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/events/hidden/{key}": {
            "delete": {
                "tags": ["Hidden events"],
                "summary": "Restore a dismissed suggestion",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "key", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Restored"}, "404": {"description": "Not found"}}
            }
        },
        "/api/v1/events/export": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the merged calendar",
                "produces": ["text/calendar", "text/csv", "application/pdf"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["ics", "csv", "pdf"]},
                    {"name": "start_date", "in": "query", "type": "string", "format": "date"},
                    {"name": "end_date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {"200": {"description": "File", "schema": {"type": "file"}}, "400": {"description": "Invalid query"}}
            }
        },
        "/api/v1/events/feed": {
            "post": {
                "tags": ["Export"],
                "summary": "Issue a calendar subscription URL",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/feeds/{token}": {
            "get": {
                "tags": ["Export"],
                "summary": "Calendar subscription feed",
                "produces": ["text/calendar"],
                "parameters": [{"name": "token", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "iCalendar", "schema": {"type": "file"}}, "401": {"description": "Invalid or expired token"}}
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        },
        "CalendarItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "key": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "date": {"type": "string", "format": "date-time"},
                "end_date": {"type": "string", "format": "date-time"},
                "type": {"type": "string", "enum": ["holiday", "festive", "commercial", "seasonal", "local", "manual"]},
                "category": {"type": "string"},
                "icon": {"type": "string"},
                "source": {"type": "string", "enum": ["auto", "local", "manual"]},
                "suggest_post": {"type": "boolean"},
                "days_until": {"type": "integer"},
                "location": {"type": "string"},
                "city": {"type": "string"},
                "post_id": {"type": "string"}
            }
        },
        "CalendarResponse": {
            "type": "object",
            "properties": {
                "range": {
                    "type": "object",
                    "properties": {"start_date": {"type": "string"}, "end_date": {"type": "string"}}
                },
                "events": {"type": "array", "items": {"$ref": "#/definitions/CalendarItem"}},
                "local_count": {"type": "integer"}
            }
        },
        "CalendarEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/CalendarResponse"},
                "meta": {
                    "type": "object",
                    "properties": {
                        "cache_hit": {"type": "boolean"},
                        "local_count": {"type": "integer"},
                        "processing_time_ms": {"type": "integer"}
                    }
                }
            }
        },
        "ManualEventPayload": {
            "type": "object",
            "required": ["title", "event_date", "event_type"],
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "event_date": {"type": "string", "description": "YYYY-MM-DD or RFC 3339"},
                "event_type": {"type": "string", "maxLength": 50},
                "description": {"type": "string"},
                "post_id": {"type": "string", "format": "uuid"}
            }
        },
        "HideEventRequest": {
            "type": "object",
            "required": ["title", "date"],
            "properties": {
                "title": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "source": {"type": "string", "enum": ["auto", "local"]}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
