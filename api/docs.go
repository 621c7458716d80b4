// Package api registers the OpenAPI document served at /swagger.
package api

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
                "description": "Check database and token store connectivity",
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "Healthy", "schema": {"$ref": "#/definitions/health"}},
                    "503": {"description": "Unhealthy", "schema": {"$ref": "#/definitions/health"}}
                }
            }
        },
        "/api/auth/{provider}/auth-url": {
            "get": {
                "description": "Returns the provider's authorization URL and the state bound to it",
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Get authorization URL",
                "parameters": [{"$ref": "#/parameters/provider"}],
                "responses": {
                    "200": {
                        "description": "Authorization URL",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "success": {"type": "boolean"},
                                "auth_url": {"type": "string"},
                                "state": {"type": "string"}
                            }
                        }
                    },
                    "404": {"description": "Provider not configured", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/api/auth/{provider}/login": {
            "get": {
                "tags": ["Auth"],
                "summary": "Start login",
                "parameters": [{"$ref": "#/parameters/provider"}],
                "responses": {"307": {"description": "Redirect to the provider"}}
            }
        },
        "/api/auth/{provider}/callback": {
            "get": {
                "tags": ["Auth"],
                "summary": "OAuth callback",
                "parameters": [
                    {"$ref": "#/parameters/provider"},
                    {"type": "string", "description": "Authorization code", "name": "code", "in": "query"},
                    {"type": "string", "description": "State issued with the authorization URL", "name": "state", "in": "query"},
                    {"type": "string", "description": "Provider error", "name": "error", "in": "query"},
                    {"type": "string", "description": "Provider error description", "name": "error_description", "in": "query"}
                ],
                "responses": {"302": {"description": "Redirect to the frontend"}}
            }
        },
        "/api/auth/{provider}/authorization-code": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register authorization code",
                "parameters": [
                    {"$ref": "#/parameters/provider"},
                    {"description": "Code and state", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/codeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/message"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/api/auth/{provider}/token": {
            "post": {
                "description": "Redeems a registered code and runs the login pipeline, answering with JSON instead of a redirect",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Exchange authorization code",
                "parameters": [
                    {"$ref": "#/parameters/provider"},
                    {"description": "Code and state", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/codeRequest"}}
                ],
                "responses": {
                    "200": {"description": "Login succeeded", "schema": {"$ref": "#/definitions/credentials"}},
                    "400": {"description": "Invalid or expired code", "schema": {"$ref": "#/definitions/message"}},
                    "401": {"description": "Provider rejected the code", "schema": {"$ref": "#/definitions/message"}},
                    "409": {"description": "User conflict", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/api/auth/{provider}/refresh": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Refresh access token",
                "parameters": [
                    {"$ref": "#/parameters/provider"},
                    {
                        "description": "Refresh token",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"type": "object", "properties": {"refresh_token": {"type": "string"}}}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/credentials"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/api/auth/{provider}/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Logout",
                "parameters": [{"$ref": "#/parameters/provider"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/message"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/api/auth/{provider}/user": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Current user",
                "parameters": [{"$ref": "#/parameters/provider"}],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "properties": {"success": {"type": "boolean"}, "user": {"type": "object"}}}
                    },
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/api/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "List users",
                "parameters": [
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "page_size", "in": "query"},
                    {"type": "string", "description": "Search by name or email", "name": "search", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Result"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Create user",
                "parameters": [
                    {"description": "User", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.User"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Result"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/services.Result"}}
                }
            }
        },
        "/api/users/batch": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Create users",
                "parameters": [
                    {
                        "description": "Users",
                        "name": "users",
                        "in": "body",
                        "required": true,
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/models.User"}}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Result"}}}
            }
        },
        "/api/users/find-by-email-provider": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Find user by email and provider",
                "parameters": [
                    {
                        "description": "Lookup key",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {"email": {"type": "string"}, "provider": {"type": "string"}}
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Result"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.Result"}}
                }
            }
        },
        "/api/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Get user",
                "parameters": [{"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Result"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.Result"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Update user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.User"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Result"}}}
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Delete user",
                "parameters": [{"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Result"}}}
            }
        },
        "/api/diaries": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Diaries"],
                "summary": "List diaries",
                "parameters": [
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "page_size", "in": "query"},
                    {"type": "string", "description": "Search by title", "name": "search", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Result"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Diaries"],
                "summary": "Create diary",
                "parameters": [
                    {"description": "Diary", "name": "diary", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Diary"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.Result"}}
                }
            }
        },
        "/api/diaries/user/{userId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Diaries"],
                "summary": "List a user's diaries",
                "parameters": [{"type": "integer", "description": "User ID", "name": "userId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Result"}}}
            }
        },
        "/api/diaries/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Diaries"],
                "summary": "Get diary",
                "parameters": [{"type": "integer", "description": "Diary ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Result"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.Result"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Diaries"],
                "summary": "Update diary",
                "parameters": [
                    {"type": "integer", "description": "Diary ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "diary", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Diary"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Result"}}}
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Diaries"],
                "summary": "Delete diary",
                "parameters": [{"type": "integer", "description": "Diary ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Result"}}}
            }
        }
    },
    "parameters": {
        "provider": {
            "type": "string",
            "enum": ["google", "github"],
            "description": "Provider name",
            "name": "provider",
            "in": "path",
            "required": true
        }
    },
    "definitions": {
        "codeRequest": {
            "type": "object",
            "required": ["code"],
            "properties": {"code": {"type": "string"}, "state": {"type": "string"}}
        },
        "credentials": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_in": {"type": "integer"},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "health": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "database": {"type": "string"},
                "token_store": {"type": "string"}
            }
        },
        "message": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}}
        },
        "models.Diary": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "diaryDate": {"type": "string", "example": "2024-01-31"},
                "title": {"type": "string"},
                "content": {"type": "string"},
                "userId": {"type": "integer"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "nickname": {"type": "string"},
                "provider": {"type": "string"},
                "providerId": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "services.Result": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Aiion API",
	Description:      "OAuth login gateway with user and diary APIs",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
