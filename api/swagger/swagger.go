package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SIM Seminar API",
        "description": "Seminar registration and review workflow for the informatics department",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Accounts, sessions and tokens"},
        {"name": "Users", "description": "Account administration and the lecturer picker"},
        {"name": "Seminars", "description": "Seminar registration, scheduling and completion"},
        {"name": "Reviews", "description": "Reviewer decisions and scoring"},
        {"name": "Quota", "description": "Per-category registration capacity"},
        {"name": "Dashboard", "description": "Role-shaped home payloads"},
        {"name": "Notifications", "description": "In-app notifications"},
        {"name": "Export", "description": "Seminar recap downloads"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate with username or email plus password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login-mahasiswa": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate a student with username or email plus NPM",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user info",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/dosen": {
            "get": {
                "tags": ["Users"],
                "summary": "List active lecturers for the reviewer picker",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seminars": {
            "get": {
                "tags": ["Seminars"],
                "summary": "List seminars scoped to the caller's role",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "jenis_seminar", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Seminars"],
                "summary": "Register seminar",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "judul_seminar", "in": "formData", "required": true, "type": "string"},
                    {"name": "jenis_seminar", "in": "formData", "required": true, "type": "string"},
                    {"name": "abstrak", "in": "formData", "required": true, "type": "string"},
                    {"name": "pembimbing_1_id", "in": "formData", "required": true, "type": "string"},
                    {"name": "pembimbing_2_id", "in": "formData", "type": "string"},
                    {"name": "penguji_1_id", "in": "formData", "type": "string"},
                    {"name": "penguji_2_id", "in": "formData", "type": "string"},
                    {"name": "tanggal_seminar", "in": "formData", "type": "string"},
                    {"name": "jam_mulai", "in": "formData", "type": "string"},
                    {"name": "ruang_seminar", "in": "formData", "type": "string"},
                    {"name": "file_proposal", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Quota exhausted or invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seminars/{id}": {
            "get": {
                "tags": ["Seminars"],
                "summary": "Seminar detail with reviews and alternate slots",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seminars/{id}/jadwal": {
            "put": {
                "tags": ["Seminars"],
                "summary": "Reschedule seminar; status resets to pending",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seminars/{id}/selesai": {
            "post": {
                "tags": ["Seminars"],
                "summary": "Mark an approved seminar as held and record the grade",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Seminar not approved", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seminars/{id}/proposal": {
            "get": {
                "tags": ["Seminars"],
                "summary": "Issue a signed download link for the proposal document",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seminars/{id}/reviews": {
            "get": {
                "tags": ["Reviews"],
                "summary": "List reviews of a seminar",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Reviews"],
                "summary": "Submit a reviewer decision",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "status", "in": "formData", "type": "string"},
                    {"name": "catatan", "in": "formData", "type": "string"},
                    {"name": "nilai_komponen_1", "in": "formData", "type": "integer"},
                    {"name": "nilai_komponen_2", "in": "formData", "type": "integer"},
                    {"name": "nilai_komponen_3", "in": "formData", "type": "integer"},
                    {"name": "nilai_komponen_4", "in": "formData", "type": "integer"},
                    {"name": "nilai_komponen_5", "in": "formData", "type": "integer"},
                    {"name": "tanggal_alternatif", "in": "formData", "type": "string"},
                    {"name": "jam_alternatif", "in": "formData", "type": "string"},
                    {"name": "ruang_alternatif", "in": "formData", "type": "string"},
                    {"name": "file_review", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Duplicate review", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reviews/{id}": {
            "put": {
                "tags": ["Reviews"],
                "summary": "Amend a submitted review; author only",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/kuota": {
            "get": {
                "tags": ["Quota"],
                "summary": "Quota snapshot per seminar category",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/kuota/{jenis}": {
            "get": {
                "tags": ["Quota"],
                "summary": "Quota for one category",
                "parameters": [
                    {"name": "jenis", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Quota"],
                "summary": "Configure the active quota for a category",
                "parameters": [
                    {"name": "jenis", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/kuota/reset": {
            "post": {
                "tags": ["Quota"],
                "summary": "Zero the used counters for every active category",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Home payload shaped by the caller's role",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "Newest notifications plus unread count",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/seminars": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the seminar recap as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "nama": {"type": "string"},
                "email": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["mahasiswa", "dosen"]},
                "npm": {"type": "string"},
                "konsentrasi": {"type": "string"}
            },
            "required": ["nama", "email", "username", "password", "role"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "ScheduleRequest": {
            "type": "object",
            "properties": {
                "tanggal_seminar": {"type": "string"},
                "jam_mulai": {"type": "string"},
                "ruang_seminar": {"type": "string"}
            },
            "required": ["tanggal_seminar", "jam_mulai", "ruang_seminar"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
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
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
