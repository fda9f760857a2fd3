// Package docs holds the Swagger 2.0 document served under /docs.
// It follows the layout swag init emits; edit it alongside the handler annotations.
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
        "/dashboard": {
            "get": {
                "description": "Reads workflows, execution logs, sessions, stats and users from the store and aggregates them into one snapshot",
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Build the analytics dashboard",
                "parameters": [
                    {"type": "string", "description": "Log and session window, e.g. 72h", "name": "lookback", "in": "query"},
                    {"type": "string", "description": "Comma separated workflow ids to restrict execution logs to", "name": "workflow_ids", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.DashboardSnapshot"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}}
                }
            }
        },
        "/dashboard/snapshot": {
            "post": {
                "description": "Aggregates feeds sent in the request body without touching the store",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Aggregate supplied feeds",
                "parameters": [
                    {"description": "Input feeds", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Feeds"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.DashboardSnapshot"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}}
                }
            }
        },
        "/logs": {
            "post": {
                "description": "Stores a single execution log entry; resending the same entry is a no-op",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Logs"],
                "summary": "Ingest an execution log entry",
                "parameters": [
                    {"description": "Log entry", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/fiber.CreateLogRequest"}}
                ],
                "responses": {
                    "200": {"description": "Duplicate entry", "schema": {"$ref": "#/definitions/fiber.CreateLogResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/fiber.CreateLogResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}}
                }
            }
        },
        "/logs/bulk": {
            "post": {
                "description": "Validates every entry first, then stores them individually",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Logs"],
                "summary": "Bulk ingest execution log entries",
                "parameters": [
                    {"description": "Log entries", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/fiber.BulkCreateLogsRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/fiber.BulkCreateLogsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "fiber.CreateLogRequest": {
            "description": "Execution log ingest DTO",
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "workflow_id": {"type": "string"},
                "execution_id": {"type": "string"},
                "level": {"type": "string", "example": "info"},
                "message": {"type": "string"},
                "duration": {"type": "string", "example": "120ms"},
                "created_at": {"type": "string"}
            }
        },
        "fiber.CreateLogResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}}
        },
        "fiber.BulkCreateLogsRequest": {
            "type": "object",
            "properties": {"logs": {"type": "array", "items": {"$ref": "#/definitions/fiber.CreateLogRequest"}}}
        },
        "fiber.BulkCreateLogsResponse": {
            "type": "object",
            "properties": {"created": {"type": "integer"}, "duplicates": {"type": "integer"}}
        },
        "domain.DashboardSnapshot": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "generatedAt": {"type": "string"},
                "overview": {"type": "object"},
                "userDemographics": {"type": "object"},
                "sessions": {"type": "object"},
                "topUsers": {"type": "array", "items": {"type": "object"}},
                "topBlocks": {"type": "array", "items": {"type": "object"}},
                "recentActivity": {"type": "array", "items": {"type": "object"}},
                "workflows": {"type": "array", "items": {"type": "object"}},
                "blockLatencies": {"type": "array", "items": {"type": "object"}}
            }
        },
        "domain.Feeds": {
            "type": "object",
            "properties": {
                "workflows": {"type": "array", "items": {"type": "object"}},
                "logs": {"type": "array", "items": {"type": "object"}},
                "sessions": {"type": "array", "items": {"type": "object"}},
                "stats": {"type": "array", "items": {"type": "object"}},
                "users": {"type": "array", "items": {"type": "object"}}
            }
        },
        "fiber.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "data_inconsistency"},
                "message": {"type": "string", "example": "engagement categories do not cover every user"},
                "details": {"$ref": "#/definitions/fiber.InconsistencyDetails"}
            }
        },
        "fiber.InconsistencyDetails": {
            "type": "object",
            "properties": {
                "total_users": {"type": "integer", "example": 12},
                "total_categorized": {"type": "integer", "example": 11},
                "delta": {"type": "integer", "example": 1},
                "uncategorized_user_ids": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Workflow Analytics Dashboard API",
	Description:      "Aggregates workflow, execution log, session and usage feeds into dashboard snapshots.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
