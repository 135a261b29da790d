// Package docs holds the OpenAPI description served at /docs.
// Keep it in step with the @Router annotations on the handlers.
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
        "/api/v1/school-service/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Service healthy or degraded", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                    "503": {"description": "Service unhealthy", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/api/v1/school-service/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness check",
                "responses": {"200": {"description": "Service ready"}, "503": {"description": "Service not ready"}}
            }
        },
        "/api/v1/school-service/live": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "Service alive"}}
            }
        },
        "/api/v1/school-service/tenants/{tenantId}/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Get tenant dashboard",
                "parameters": [{"type": "string", "name": "tenantId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DashboardSummary"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/api/v1/school-service/tenants/{tenantId}/activity": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Get recent activity",
                "parameters": [
                    {"type": "string", "name": "tenantId", "in": "path", "required": true},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ActivityResponse"}}}
            }
        },
        "/api/v1/school-service/tenants/{tenantId}/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"type": "string", "name": "tenantId", "in": "path", "required": true},
                    {"type": "integer", "name": "grade", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListStudentsResponse"}}}
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create a student",
                "consumes": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "tenantId", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.StudentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/api/v1/school-service/tenants/{tenantId}/students/{studentId}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get a student",
                "parameters": [
                    {"type": "string", "name": "tenantId", "in": "path", "required": true},
                    {"type": "string", "name": "studentId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StudentResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/api/v1/school-service/admin/cache": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "Drop every cache entry",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/v1/school-service/admin/cache/warm": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "Pre-compute dashboards",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.WarmCacheRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.WarmCacheResponse"}}}
            }
        },
        "/api/v1/school-service/admin/cache/keys/{key}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "Check a cache key",
                "parameters": [{"type": "string", "name": "key", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.KeyExistsResponse"}}}
            }
        },
        "/api/v1/school-service/admin/tenants": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "List tenants with invalidated caches",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ActiveTenantsResponse"}}}
            }
        },
        "/api/v1/school-service/admin/tenants/{tenantId}/students": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "List a tenant's cached students",
                "parameters": [{"type": "string", "name": "tenantId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CachedStudentsResponse"}}}
            }
        },
        "/api/v1/school-service/admin/tenants/{tenantId}/cache": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "Drop a tenant's cached entries",
                "parameters": [
                    {"type": "string", "name": "tenantId", "in": "path", "required": true},
                    {"type": "string", "name": "reason", "in": "query"}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        }
    },
    "definitions": {
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "components": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "dto.CreateStudentRequest": {
            "type": "object",
            "required": ["firstName", "lastName", "grade"],
            "properties": {
                "firstName": {"type": "string", "maxLength": 100},
                "lastName": {"type": "string", "maxLength": 100},
                "grade": {"type": "integer", "minimum": 1, "maximum": 13},
                "classId": {"type": "string", "maxLength": 64}
            }
        },
        "dto.StudentResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "fullName": {"type": "string"},
                "grade": {"type": "integer"},
                "classId": {"type": "string"},
                "status": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "dto.ListStudentsResponse": {
            "type": "object",
            "properties": {
                "students": {"type": "array", "items": {"$ref": "#/definitions/dto.StudentResponse"}},
                "count": {"type": "integer"},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"}
            }
        },
        "dto.ActivityResponse": {
            "type": "object",
            "properties": {
                "activities": {"type": "array", "items": {"$ref": "#/definitions/models.Activity"}},
                "count": {"type": "integer"}
            }
        },
        "dto.WarmCacheRequest": {
            "type": "object",
            "required": ["tenantIds"],
            "properties": {"tenantIds": {"type": "array", "items": {"type": "string"}}}
        },
        "dto.WarmCacheResponse": {
            "type": "object",
            "properties": {"warmed": {"type": "integer"}}
        },
        "dto.KeyExistsResponse": {
            "type": "object",
            "properties": {"key": {"type": "string"}, "exists": {"type": "boolean"}}
        },
        "dto.ActiveTenantsResponse": {
            "type": "object",
            "properties": {"tenants": {"type": "array", "items": {"type": "string"}}}
        },
        "dto.CachedStudentsResponse": {
            "type": "object",
            "properties": {
                "students": {"type": "array", "items": {"$ref": "#/definitions/dto.StudentResponse"}},
                "count": {"type": "integer"}
            }
        },
        "models.Activity": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "tenantId": {"type": "string"},
                "subjectId": {"type": "string"},
                "summary": {"type": "string"},
                "occurredAt": {"type": "string"}
            }
        },
        "models.DashboardSummary": {
            "type": "object",
            "properties": {
                "tenantId": {"type": "string"},
                "totalStudents": {"type": "integer"},
                "activeStudents": {"type": "integer"},
                "studentsByGrade": {"type": "object", "additionalProperties": {"type": "integer"}},
                "computedAt": {"type": "string"}
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "School Service API",
	Description:      "Tenant dashboards and student records served through a Redis cache in front of MongoDB.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
