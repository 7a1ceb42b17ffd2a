// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ws": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Live views stream",
                "description": "Upgrades to a WebSocket, opens a private session and pushes its views after every tick.",
                "responses": {"101": {"description": "Switching Protocols"}}
            }
        },
        "/api/v1/sessions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "List sessions",
                "parameters": [
                    {"type": "boolean", "description": "Only running sessions", "name": "active", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, sessions"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            },
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Open a session",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.SessionInfo"}},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/api/v1/sessions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Get session",
                "parameters": [
                    {"type": "string", "description": "Session id (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SessionInfo"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Close session",
                "parameters": [
                    {"type": "string", "description": "Session id (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/sessions/{id}/views": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Current views",
                "parameters": [
                    {"type": "string", "description": "Session id (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Views"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/sessions/{id}/table": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Table projection",
                "parameters": [
                    {"type": "string", "description": "Session id (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Table"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/sessions/{id}/latest": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Latest reading",
                "parameters": [
                    {"type": "string", "description": "Session id (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Reading"}},
                    "204": {"description": "No reading yet"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/logs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List session journal",
                "parameters": [
                    {"type": "string", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "description": "End of range; date-only is end of day", "name": "to", "in": "query"},
                    {"enum": ["SESSION_OPEN", "SESSION_CLOSE", "TICK_ERROR"], "type": "string", "description": "Event type", "name": "type", "in": "query"},
                    {"type": "string", "format": "uuid", "description": "Only events of this session", "name": "session_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        }
    },
    "definitions": {
        "models.Reading": {
            "type": "object",
            "properties": {
                "temp": {"type": "number"},
                "timestamp": {"type": "string"},
                "captured_at": {"type": "string"}
            }
        },
        "models.TableRow": {
            "type": "object",
            "properties": {
                "temp": {"type": "number"},
                "timestamp": {"type": "string"}
            }
        },
        "models.Table": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"type": "string"}},
                "rows": {"type": "array", "items": {"$ref": "#/definitions/models.TableRow"}}
            }
        },
        "models.Views": {
            "type": "object",
            "properties": {
                "snapshot": {"type": "array", "items": {"$ref": "#/definitions/models.Reading"}},
                "table": {"$ref": "#/definitions/models.Table"},
                "latest": {"$ref": "#/definitions/models.Reading"}
            }
        },
        "models.SessionInfo": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "opened_at": {"type": "string"},
                "closed_at": {"type": "string"},
                "capacity": {"type": "integer"},
                "interval_ms": {"type": "integer"},
                "ticks": {"type": "integer"},
                "last_tick_at": {"type": "string"},
                "active": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Antarctica live temperature API",
	Description:      "Synthetic temperature readings in a rolling window, one private store per session.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
