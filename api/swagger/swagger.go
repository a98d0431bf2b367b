package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "FileFlow Portal API",
        "description": "Intake portal that relays fiscal documents to the accounting office FTP store",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Uploads", "description": "Document relay and submission tracking"},
        {"name": "Categories", "description": "Document category catalogue"},
        {"name": "Companies", "description": "Client companies and required categories"},
        {"name": "Users", "description": "Portal users and company permissions"},
        {"name": "Reports", "description": "Monthly compliance report"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/upload/{tipoArquivo}/{empresaId}/{mes}": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Relay a fiscal document to the remote store",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "tipoArquivo", "in": "path", "required": true, "type": "string"},
                    {"name": "empresaId", "in": "path", "required": true, "type": "string"},
                    {"name": "mes", "in": "path", "required": true, "type": "string", "description": "YYYY-MM"},
                    {"name": "x-user-id", "in": "header", "type": "string"},
                    {"name": "arquivo", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UploadResult"}},
                    "400": {"description": "Validation or lookup error", "schema": {"$ref": "#/definitions/Error"}},
                    "500": {"description": "Transfer error", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/uploads": {
            "get": {
                "tags": ["Uploads"],
                "summary": "List categories already submitted for a slot",
                "parameters": [
                    {"name": "usuario_id", "in": "query", "required": true, "type": "string"},
                    {"name": "empresa_id", "in": "query", "required": true, "type": "string"},
                    {"name": "mes", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/SubmittedCategory"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/uploads/situacao": {
            "get": {
                "tags": ["Uploads"],
                "summary": "Per-category submission state for a slot",
                "parameters": [
                    {"name": "usuario_id", "in": "query", "required": true, "type": "string"},
                    {"name": "empresa_id", "in": "query", "required": true, "type": "string"},
                    {"name": "mes", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/CategoryStatus"}}}
                }
            }
        },
        "/tipos-arquivos": {
            "get": {
                "tags": ["Categories"],
                "summary": "List document categories with accepted extensions",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/CategoryInfo"}}}
                }
            }
        },
        "/empresas": {
            "get": {
                "tags": ["Companies"],
                "summary": "List companies",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Company"}}}
                }
            }
        },
        "/empresas/{id}/tipos-arquivos": {
            "get": {
                "tags": ["Companies"],
                "summary": "List the categories a company must submit",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            },
            "put": {
                "tags": ["Companies"],
                "summary": "Replace the categories a company must submit",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceCompanyCategoriesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}},
                    "400": {"description": "Unknown category", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Unknown company", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/usuarios": {
            "get": {
                "tags": ["Users"],
                "summary": "List portal users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/PortalUser"}}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create a portal user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/PortalUser"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/usuarios/{id}": {
            "put": {
                "tags": ["Users"],
                "summary": "Create or rename a portal user",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PortalUser"}}
                }
            }
        },
        "/usuarios/{id}/empresas": {
            "get": {
                "tags": ["Users"],
                "summary": "List the companies a user may submit for",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Company"}}}
                }
            },
            "put": {
                "tags": ["Users"],
                "summary": "Replace the companies a user may submit for",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceUserCompaniesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Company"}}}
                }
            }
        },
        "/usuarios-auth": {
            "get": {
                "tags": ["Users"],
                "summary": "List identity accounts",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/IdentityUser"}}}
                }
            }
        },
        "/relatorios/envios": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download the monthly submission compliance report",
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "mes", "in": "query", "required": true, "type": "string"},
                    {"name": "formato", "in": "query", "type": "string", "enum": ["csv", "pdf", "xlsx"]}
                ],
                "responses": {
                    "200": {"description": "Report file", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {
                "erro": {"type": "string"},
                "codigo": {"type": "string"}
            }
        },
        "UploadResult": {
            "type": "object",
            "properties": {
                "sucesso": {"type": "boolean"},
                "mensagem": {"type": "string"},
                "remotePath": {"type": "string"}
            }
        },
        "SubmittedCategory": {
            "type": "object",
            "properties": {
                "tipo_arquivo": {"type": "string"}
            }
        },
        "CategoryStatus": {
            "type": "object",
            "properties": {
                "tipo": {"type": "string"},
                "nome": {"type": "string"},
                "status": {"type": "string", "enum": ["pendente", "enviado"]},
                "total": {"type": "integer"},
                "ultimoEnvio": {"type": "string", "format": "date-time"}
            }
        },
        "CategoryInfo": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "nome": {"type": "string"},
                "descricao": {"type": "string"},
                "extensoes": {"type": "array", "items": {"type": "string"}}
            }
        },
        "Company": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "nome": {"type": "string"},
                "cnpj": {"type": "string"}
            }
        },
        "PortalUser": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "nome": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "IdentityUser": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "CreateUserRequest": {
            "type": "object",
            "required": ["id", "nome", "email"],
            "properties": {
                "id": {"type": "string"},
                "nome": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "UpdateUserRequest": {
            "type": "object",
            "required": ["nome"],
            "properties": {
                "nome": {"type": "string"}
            }
        },
        "ReplaceUserCompaniesRequest": {
            "type": "object",
            "properties": {
                "empresas": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ReplaceCompanyCategoriesRequest": {
            "type": "object",
            "properties": {
                "tipos": {"type": "array", "items": {"type": "string"}}
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
