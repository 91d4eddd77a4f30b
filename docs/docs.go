// Package docs registers the OpenAPI document of the gateway with swag.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "url": "https://codeberg.org/pixelgate/server"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Reports that the gateway is up and lists the subscription plans",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness and pricing",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/health.Response"}}
                }
            }
        },
        "/api/models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "List supported models",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Response"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/status": {
            "get": {
                "description": "Probes the image service for the default model and reports operational or degraded",
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Upstream reachability",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/status.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/generate": {
            "post": {
                "description": "Validates the request against the caller's plan, forwards it to the image service and returns the image as a data URL",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["generate"],
                "summary": "Generate one image",
                "parameters": [
                    {"description": "Generation parameters", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/validation.GenerationRequest"}},
                    {"type": "string", "description": "Plan hint", "name": "X-RapidAPI-Subscription", "in": "header"},
                    {"type": "string", "description": "Caller id", "name": "X-RapidAPI-User", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/gateway.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "402": {"description": "Payment Required", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/generate/batch": {
            "post": {
                "description": "Acknowledges up to five prompts. Images are not generated by this endpoint.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["generate"],
                "summary": "Submit a batch of prompts",
                "parameters": [
                    {"description": "Prompts", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/generate.BatchRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/gateway.BatchResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/admin/health": {
            "get": {
                "security": [{"AdminKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Operator health snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/admin.HealthResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/admin/usage": {
            "get": {
                "security": [{"AdminKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Daily usage per caller",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/admin.UsageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string", "example": "prompt_required"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "plans.Plan": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "max_resolution": {"type": "integer"},
                "price": {"type": "number"},
                "daily_limit": {"type": "integer"}
            }
        },
        "health.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "service": {"type": "string"},
                "version": {"type": "string"},
                "plans": {"type": "array", "items": {"$ref": "#/definitions/plans.Plan"}},
                "endpoints": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.Model": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "max_resolution": {"type": "integer"},
                "default": {"type": "boolean"}
            }
        },
        "models.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "models": {"type": "array", "items": {"$ref": "#/definitions/models.Model"}}
            }
        },
        "status.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "status": {"type": "string", "enum": ["operational", "degraded"]},
                "upstream": {"type": "object", "additionalProperties": true},
                "latency_ms": {"type": "integer"},
                "checked_at": {"type": "string", "format": "date-time"}
            }
        },
        "validation.GenerationRequest": {
            "type": "object",
            "required": ["prompt"],
            "properties": {
                "prompt": {"type": "string", "maxLength": 1500},
                "negative_prompt": {"type": "string", "maxLength": 1500},
                "width": {"type": "integer", "minimum": 64, "maximum": 1024, "default": 512},
                "height": {"type": "integer", "minimum": 64, "maximum": 1024, "default": 512},
                "steps": {"type": "integer", "minimum": 1, "maximum": 50, "default": 30},
                "guidance_scale": {"type": "number", "minimum": 1, "maximum": 20, "default": 7.5},
                "model": {"type": "string"}
            }
        },
        "generate.BatchRequest": {
            "type": "object",
            "properties": {
                "prompts": {"type": "array", "maxItems": 5, "items": {"type": "string"}}
            }
        },
        "gateway.Result": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "id": {"type": "string"},
                "image": {"type": "string", "description": "data:<mime>;base64,<payload>"},
                "metadata": {"type": "object", "additionalProperties": true},
                "plan": {"type": "object", "additionalProperties": true},
                "usage": {"type": "object", "additionalProperties": true},
                "upgrade": {"type": "object", "additionalProperties": true},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "gateway.BatchResult": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "batch_id": {"type": "string"},
                "status": {"type": "string"},
                "count": {"type": "integer"},
                "message": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "admin.HealthResponse": {
            "type": "object",
            "additionalProperties": true
        },
        "admin.UsageResponse": {
            "type": "object",
            "additionalProperties": true
        }
    },
    "securityDefinitions": {
        "AdminKeyAuth": {
            "type": "apiKey",
            "name": "X-Admin-Secret",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pixelgate API",
	Description:      "Plan-gated text-to-image gateway returning images as data URLs",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
