// Package docs registers the OpenAPI document served at /swagger/.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Log in", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current admin", "responses": {"200": {"description": "OK"}}}},
        "/events": {
            "get": {"tags": ["events"], "summary": "List events", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["events"], "summary": "Create an event", "responses": {"201": {"description": "Created"}}}
        },
        "/events/{eventID}": {
            "get": {"tags": ["events"], "summary": "Get an event", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["events"], "summary": "Update an event", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["events"], "summary": "Delete an event", "responses": {"200": {"description": "OK"}}}
        },
        "/events/{eventID}/availability": {"get": {"tags": ["events"], "summary": "Get event availability", "responses": {"200": {"description": "OK"}}}},
        "/events/{eventID}/status": {"get": {"tags": ["events"], "summary": "Get event status", "responses": {"200": {"description": "OK"}}}},
        "/events/{eventID}/registrations": {"get": {"security": [{"BearerAuth": []}], "tags": ["registrations"], "summary": "List registrations for an event", "responses": {"200": {"description": "OK"}}}},
        "/event-registrations": {"post": {"tags": ["registrations"], "summary": "Register for an event", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/event-registrations/{registrationID}": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["registrations"], "summary": "Change a registration's status", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["registrations"], "summary": "Delete a registration", "responses": {"200": {"description": "OK"}}}
        },
        "/posts": {
            "get": {"tags": ["posts"], "summary": "List published posts", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["posts"], "summary": "Create a post", "responses": {"201": {"description": "Created"}}}
        },
        "/posts/{slug}": {"get": {"tags": ["posts"], "summary": "Get a published post", "responses": {"200": {"description": "OK"}}}},
        "/posts/{postID}": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["posts"], "summary": "Update a post", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["posts"], "summary": "Delete a post", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/posts": {"get": {"security": [{"BearerAuth": []}], "tags": ["posts"], "summary": "List all posts", "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "AI Club Events API",
	Description:      "Events, registrations and posts for the AI club website and admin dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
