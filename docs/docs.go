// Package docs registers the OpenAPI document served under /swagger.
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
        "/ask": {
            "post": {
                "description": "Forwards the query to the completion API as-is. Not cached.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tutor"],
                "summary": "Ask a free-form question",
                "parameters": [
                    {"description": "Question", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.AskRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AnswerResponse"}},
                    "400": {"description": "Missing query", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Completion API error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/analyze-image": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["tutor"],
                "summary": "Explain a GRE question from an image",
                "parameters": [
                    {"type": "file", "description": "Question image", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "What the student wants to know", "name": "question", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AnswerResponse"}},
                    "400": {"description": "Missing file or question", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Decode, OCR or completion failure", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/analyze-gre-verbal": {
            "post": {
                "description": "Returns the model's answer as a raw HTML fragment.",
                "consumes": ["multipart/form-data"],
                "produces": ["text/html"],
                "tags": ["tutor"],
                "summary": "Explain a GRE verbal question with conversation context",
                "parameters": [
                    {"type": "file", "description": "Question image", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Current question", "name": "question", "in": "formData", "required": true},
                    {"type": "string", "default": "[]", "description": "JSON array of {role, content}", "name": "conversation_history", "in": "formData"},
                    {"type": "string", "description": "Answer the student believes is correct", "name": "correct_answer", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "HTML answer", "schema": {"type": "string"}},
                    "400": {"description": "Missing file or question", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Decode, OCR, history or completion failure", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/analyze-gre-quant": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["tutor"],
                "summary": "Solve a GRE quantitative question from an image",
                "parameters": [
                    {"type": "file", "description": "Question image", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "What the student wants to know", "name": "question", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AnswerResponse"}},
                    "400": {"description": "Missing file or question", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Decode, OCR or completion failure", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/analyze-gre-writing": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["tutor"],
                "summary": "Coach a GRE analytical writing prompt from an image",
                "parameters": [
                    {"type": "file", "description": "Prompt image", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Writing prompt or request", "name": "question", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AnswerResponse"}},
                    "400": {"description": "Missing file or question", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Decode, OCR or completion failure", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/follow-up": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tutor"],
                "summary": "Ask a follow-up question about a previous explanation",
                "parameters": [
                    {"description": "Follow-up", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.FollowUpRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AnswerResponse"}},
                    "400": {"description": "Missing question", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Completion API error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/feedback": {
            "post": {
                "description": "Feedback is logged and counted; nothing is stored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tutor"],
                "summary": "Rate a tutor response",
                "parameters": [
                    {"description": "Feedback", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.FeedbackRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.FeedbackResponse"}},
                    "400": {"description": "Invalid body", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/tesseract-version": {
            "get": {
                "description": "Failures are reported as {\"error\": \"...\"} with status 200.",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Report the installed Tesseract version",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.VersionResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.AskRequest": {
            "type": "object",
            "required": ["query"],
            "properties": {"query": {"type": "string", "example": "What is the difference between mean and median?"}}
        },
        "handler.FollowUpRequest": {
            "type": "object",
            "required": ["question"],
            "properties": {
                "question": {"type": "string", "example": "Why is option C wrong?"},
                "previous_context": {"type": "string"}
            }
        },
        "handler.FeedbackRequest": {
            "type": "object",
            "required": ["helpful"],
            "properties": {
                "helpful": {"type": "boolean", "example": true},
                "response": {"type": "string"}
            }
        },
        "handler.AnswerResponse": {
            "type": "object",
            "properties": {"answer": {"type": "string", "example": "x = 2"}}
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {"detail": {"type": "string", "example": "tesseract error: exit status 1"}}
        },
        "handler.VersionResponse": {
            "type": "object",
            "properties": {"version": {"type": "string", "example": "5.3.0"}}
        },
        "handler.FeedbackResponse": {
            "type": "object",
            "properties": {"status": {"type": "string", "example": "received"}}
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {"status": {"type": "string", "example": "ok"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "GRE Tutor API",
	Description:      "OCR-backed GRE question tutor.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
