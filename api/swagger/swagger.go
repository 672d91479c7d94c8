package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Building Reservation API",
        "description": "Room reservation scheduling and conflict resolution service",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Buildings", "description": "Building and floor directory"},
        {"name": "Availability", "description": "Room availability search"},
        {"name": "Reservations", "description": "Reservation submission and admin lifecycle"},
        {"name": "Series", "description": "Recurring weekly series management"},
        {"name": "Dashboard", "description": "Admin summary counters"},
        {"name": "Exports", "description": "Reservation ledger exports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
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
        "/buildings": {
            "get": {
                "tags": ["Buildings"],
                "summary": "List buildings with room counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/buildings/{id}/floors": {
            "get": {
                "tags": ["Buildings"],
                "summary": "List distinct floors of a building",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Building not found"}
                }
            }
        },
        "/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "Search rooms free for every hour of a window",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true, "description": "YYYY-MM-DD"},
                    {"name": "startHour", "in": "query", "type": "integer", "required": true, "description": "7-19"},
                    {"name": "endHour", "in": "query", "type": "integer", "required": true, "description": "exclusive, 8-20"},
                    {"name": "buildingId", "in": "query", "type": "string"},
                    {"name": "floor", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid query"}
                }
            }
        },
        "/reservations": {
            "post": {
                "tags": ["Reservations"],
                "summary": "Submit a multi-hour reservation request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitReservationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created pending", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload or weekend date"},
                    "404": {"description": "Room not found"},
                    "409": {"description": "An hour in the window is already reserved or pending"}
                }
            }
        },
        "/admin/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Pending/approved counts plus building and room totals",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Administrator access required"}
                }
            }
        },
        "/admin/rooms": {
            "get": {
                "tags": ["Rooms"],
                "summary": "List rooms, optionally scoped to a building",
                "parameters": [
                    {"name": "buildingId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/rooms/{id}/schedule": {
            "get": {
                "tags": ["Rooms"],
                "summary": "Three-week weekday schedule of one room",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Room not found"}
                }
            }
        },
        "/admin/reservations": {
            "get": {
                "tags": ["Reservations"],
                "summary": "List reservations with room and building detail",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "description": "pending|approved|rejected"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/reservations/blocks": {
            "get": {
                "tags": ["Reservations"],
                "summary": "Pending reservations grouped into contiguous blocks",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/reservations/blocks/approve": {
            "post": {
                "tags": ["Reservations"],
                "summary": "Approve every pending slot in a block",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BlockActionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/reservations/blocks/reject": {
            "post": {
                "tags": ["Reservations"],
                "summary": "Reject every pending or approved slot in a block",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BlockActionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/reservations/{id}/approve": {
            "post": {
                "tags": ["Reservations"],
                "summary": "Approve a pending reservation",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Approved"},
                    "404": {"description": "Reservation not found"},
                    "409": {"description": "Not in a state that allows approval"}
                }
            }
        },
        "/admin/reservations/{id}/reject": {
            "post": {
                "tags": ["Reservations"],
                "summary": "Reject a pending or approved reservation",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Rejected"},
                    "404": {"description": "Reservation not found"},
                    "409": {"description": "Not in a state that allows rejection"}
                }
            }
        },
        "/admin/reservations/{id}": {
            "delete": {
                "tags": ["Reservations"],
                "summary": "Cancel (hard delete) a reservation",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Reservation not found"}
                }
            }
        },
        "/admin/reservations/export": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export reservations as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "description": "csv (default) or pdf"},
                    {"name": "status", "in": "query", "type": "string", "description": "pending|approved|rejected"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/admin/series": {
            "get": {
                "tags": ["Series"],
                "summary": "List future recurring series reconstructed from slots",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Series"],
                "summary": "Create a recurring weekly series",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSeriesRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created, possibly with per-slot conflicts reported"},
                    "400": {"description": "Invalid payload"},
                    "404": {"description": "Room not found"}
                }
            },
            "delete": {
                "tags": ["Series"],
                "summary": "Delete a series from a date onward",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DeleteSeriesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK; deleting zero slots is a successful no-op"}
                }
            }
        }
    },
    "definitions": {
        "SubmitReservationRequest": {
            "type": "object",
            "required": ["room_id", "reserved_by", "date"],
            "properties": {
                "room_id": {"type": "string"},
                "reserved_by": {"type": "string"},
                "date": {"type": "string", "example": "2026-09-07"},
                "start_hour": {"type": "integer", "example": 9},
                "end_hour": {"type": "integer", "example": 11}
            }
        },
        "BlockActionRequest": {
            "type": "object",
            "required": ["slot_ids"],
            "properties": {
                "slot_ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "CreateSeriesRequest": {
            "type": "object",
            "required": ["reserved_by", "room_id"],
            "properties": {
                "reserved_by": {"type": "string", "example": "Recurring: Robotics Club"},
                "building_id": {"type": "string"},
                "room_id": {"type": "string"},
                "weekday": {"type": "integer", "description": "0=Sunday .. 6=Saturday"},
                "start_hour": {"type": "integer"},
                "end_hour": {"type": "integer"},
                "weeks": {"type": "integer", "description": "clamped to 1..52"},
                "start_date": {"type": "string"},
                "status": {"type": "string", "description": "pending or approved"}
            }
        },
        "DeleteSeriesRequest": {
            "type": "object",
            "required": ["reserved_by", "room_id"],
            "properties": {
                "reserved_by": {"type": "string"},
                "room_id": {"type": "string"},
                "weekday": {"type": "integer"},
                "from_date": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
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
