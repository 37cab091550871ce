// Package docs registers the swagger specification served at /swagger.
// The template tracks the handlers by hand; keep it in sync when routes change.
package docs

import "github.com/swaggo/swag"

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
        "/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login and receive a bearer token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Current authenticated user",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/category": {
            "get": {
                "tags": ["category"],
                "summary": "List all categories",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["category"],
                "summary": "Create a category",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/category/{id}": {
            "get": {
                "tags": ["category"],
                "summary": "Get a single category",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "tags": ["category"],
                "summary": "Update a category",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"},
                    "422": {"description": "Unprocessable Entity"}
                }
            },
            "delete": {
                "tags": ["category"],
                "summary": "Delete a category",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/products": {
            "get": {
                "tags": ["products"],
                "summary": "List products with optional filters",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "number", "name": "price_min", "in": "query"},
                    {"type": "number", "name": "price_max", "in": "query"},
                    {"type": "string", "name": "name", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["products"],
                "summary": "Create a product with an image attachment",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "name", "in": "formData", "required": true},
                    {"type": "integer", "name": "id_category", "in": "formData", "required": true},
                    {"type": "string", "name": "description", "in": "formData", "required": true},
                    {"type": "number", "name": "price", "in": "formData", "required": true},
                    {"type": "file", "name": "image", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "tags": ["products"],
                "summary": "Get a single product",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "tags": ["products"],
                "summary": "Update a product",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"},
                    "422": {"description": "Unprocessable Entity"}
                }
            },
            "delete": {
                "tags": ["products"],
                "summary": "Delete a product and its image",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Catalog Management API",
	Description:      "Catalog management API with bearer-token authentication, role-gated category and product CRUD, and image attachments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
