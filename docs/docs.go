// Package docs is generated by swaggo/swag from the controller annotations.
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
        "/api/catalog/categories": {
            "get": {"produces": ["application/json"], "tags": ["Catalog"], "summary": "Category catalog", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CatalogResp"}}}}
        },
        "/api/wizard/sessions": {
            "post": {"produces": ["application/json"], "tags": ["Wizard"], "summary": "Start an ad-posting wizard", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResp"}}}}
        },
        "/api/wizard/sessions/{id}": {
            "get": {"produces": ["application/json"], "tags": ["Wizard"], "summary": "Get wizard state", "parameters": [{"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResp"}}, "404": {"description": "unknown session"}}},
            "delete": {"tags": ["Wizard"], "summary": "Discard a wizard", "parameters": [{"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "unknown session"}}}
        },
        "/api/wizard/sessions/{id}/fields": {
            "patch": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["Wizard"], "summary": "Change a form field", "parameters": [{"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}, {"description": "field change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ChangeFieldReq"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResp"}}, "400": {"description": "unknown field or option"}}}
        },
        "/api/wizard/sessions/{id}/category": {
            "put": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["Wizard"], "summary": "Change the ad category", "parameters": [{"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}, {"description": "category", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ChangeCategoryReq"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResp"}}, "400": {"description": "unknown category"}}}
        },
        "/api/wizard/sessions/{id}/next": {
            "post": {"produces": ["application/json"], "tags": ["Wizard"], "summary": "Go to the next step", "parameters": [{"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResp"}}, "422": {"description": "step gate failed"}}}
        },
        "/api/wizard/sessions/{id}/back": {
            "post": {"produces": ["application/json"], "tags": ["Wizard"], "summary": "Go to the previous step", "parameters": [{"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResp"}}}}
        },
        "/api/wizard/sessions/{id}/images": {
            "post": {"consumes": ["multipart/form-data"], "produces": ["application/json"], "tags": ["Wizard"], "summary": "Add images", "parameters": [{"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}, {"type": "file", "description": "image files", "name": "images", "in": "formData", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResp"}}, "422": {"description": "limit, size or type violated"}}}
        },
        "/api/wizard/sessions/{id}/images/{index}": {
            "delete": {"produces": ["application/json"], "tags": ["Wizard"], "summary": "Remove an image", "parameters": [{"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}, {"type": "integer", "description": "image position, starting at 0", "name": "index", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResp"}}}}
        },
        "/api/wizard/sessions/{id}/video": {
            "put": {"consumes": ["multipart/form-data"], "produces": ["application/json"], "tags": ["Wizard"], "summary": "Set the video", "parameters": [{"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}, {"type": "file", "description": "video file", "name": "video", "in": "formData", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResp"}}, "409": {"description": "superseded by a newer selection"}, "422": {"description": "size, duration or type violated"}}},
            "delete": {"produces": ["application/json"], "tags": ["Wizard"], "summary": "Remove the video", "parameters": [{"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResp"}}}}
        },
        "/api/wizard/sessions/{id}/submit": {
            "post": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["Wizard"], "summary": "Submit the ad", "parameters": [{"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SubmitResp"}}, "401": {"description": "not logged in"}, "409": {"description": "submission already in progress"}, "422": {"description": "location or images missing"}, "429": {"description": "posting too often"}, "502": {"description": "marketplace rejected the ad"}}}
        },
        "/api/reports": {
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["Reports"], "summary": "Report an ad", "parameters": [{"description": "report", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.FileReportReq"}}], "responses": {"200": {"description": "OK"}, "400": {"description": "unknown reason"}}}
        },
        "/api/reports/reasons": {
            "get": {"produces": ["application/json"], "tags": ["Reports"], "summary": "Report reasons", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}}}
        },
        "/api/admin/reports": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["Admin"], "summary": "List reports", "parameters": [{"type": "string", "name": "status", "in": "query"}, {"type": "string", "name": "ad_id", "in": "query"}, {"type": "integer", "name": "page", "in": "query"}, {"type": "integer", "name": "page_size", "in": "query"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PageResp"}}}}
        },
        "/api/admin/reports/open": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["Admin"], "summary": "Open reports", "responses": {"200": {"description": "OK"}}}
        },
        "/api/admin/reports/{id}/status": {
            "patch": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["Admin"], "summary": "Change report status", "parameters": [{"type": "integer", "description": "report id", "name": "id", "in": "path", "required": true}, {"description": "new status", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateReportStatusReq"}}], "responses": {"200": {"description": "OK"}, "404": {"description": "unknown report"}, "409": {"description": "busy, conflicting or invalid transition"}}}
        },
        "/api/admin/submissions": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["Admin"], "summary": "List submissions", "parameters": [{"type": "string", "name": "owner_uid", "in": "query"}, {"type": "string", "name": "category", "in": "query"}, {"type": "string", "name": "status", "in": "query"}, {"type": "integer", "name": "page", "in": "query"}, {"type": "integer", "name": "page_size", "in": "query"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PageResp"}}}}
        },
        "/api/admin/submissions/stats": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["Admin"], "summary": "Submission statistics", "parameters": [{"type": "integer", "name": "days", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/admin/submissions/{id}": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["Admin"], "summary": "Get a submission", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "not found"}}}
        }
    },
    "definitions": {
        "dto.ChangeFieldReq": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}, "value": {"type": "string"}, "is_checkbox": {"type": "boolean"}}},
        "dto.ChangeCategoryReq": {"type": "object", "properties": {"category": {"type": "string"}}},
        "dto.FileReportReq": {"type": "object", "required": ["ad_id", "reason"], "properties": {"ad_id": {"type": "string"}, "reason": {"type": "string"}, "details": {"type": "string"}}},
        "dto.UpdateReportStatusReq": {"type": "object", "required": ["status"], "properties": {"status": {"type": "string", "enum": ["reviewing", "resolved", "dismissed"]}, "note": {"type": "string"}}},
        "dto.SubmitResp": {"type": "object", "properties": {"session_id": {"type": "string"}, "redirect": {"type": "string"}}},
        "dto.MediaResp": {"type": "object", "properties": {"id": {"type": "string"}, "filename": {"type": "string"}, "content_type": {"type": "string"}, "size": {"type": "integer"}, "duration_sec": {"type": "number"}, "preview_url": {"type": "string"}}},
        "dto.SessionResp": {"type": "object", "properties": {"id": {"type": "string"}, "step": {"type": "integer"}, "step_name": {"type": "string"}, "common": {"type": "object"}, "extra": {"type": "object", "additionalProperties": {"type": "string"}}, "schema": {"type": "array", "items": {"type": "object"}}, "no_price": {"type": "boolean"}, "images": {"type": "array", "items": {"$ref": "#/definitions/dto.MediaResp"}}, "video": {"$ref": "#/definitions/dto.MediaResp"}, "submitting": {"type": "boolean"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}, "max_images": {"type": "integer"}, "images_left": {"type": "integer"}}},
        "dto.CatalogResp": {"type": "object", "properties": {"categories": {"type": "array", "items": {"type": "object"}}, "conditions": {"type": "array", "items": {"type": "string"}}, "limits": {"type": "object"}}},
        "dto.PageResp": {"type": "object", "properties": {"list": {}, "total": {"type": "integer"}, "page": {"type": "integer"}, "page_size": {"type": "integer"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Zitheke Ad Wizard API",
	Description:      "Server side of the Zitheke post-an-ad wizard and report moderation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
