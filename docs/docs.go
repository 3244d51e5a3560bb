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
        "/auth/token": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange the organizer password for a bearer token",
                "responses": {"200": {"description": "token"}, "401": {"description": "Invalid credentials"}}
            }
        },
        "/tournaments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "IDs of every tournament with stored state",
                "responses": {"200": {"description": "tournaments"}}
            }
        },
        "/tournaments/{tournamentID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Tournament overview with phase statuses",
                "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "overview"}}
            }
        },
        "/tournaments/{tournamentID}/config": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Phase schema and per-phase allocations",
                "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "config"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Configure the phase schema",
                "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "config"}, "400": {"description": "Invalid schema"}, "409": {"description": "A later phase has started"}}
            }
        },
        "/tournaments/{tournamentID}/standings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Overall standings on cumulative statistics",
                "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "standings"}}
            }
        },
        "/tournaments/{tournamentID}/phases/{phaseIndex}/standings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Per-group standings of a phase with qualification status",
                "parameters": [
                    {"type": "string", "name": "tournamentID", "in": "path", "required": true},
                    {"type": "integer", "name": "phaseIndex", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "phase standings"}, "404": {"description": "Phase not found"}}
            }
        },
        "/tournaments/{tournamentID}/phases/{phaseIndex}/advance": {
            "get": {
                "produces": ["application/json"],
                "tags": ["phases"],
                "summary": "Whether a phase can advance",
                "parameters": [
                    {"type": "string", "name": "tournamentID", "in": "path", "required": true},
                    {"type": "integer", "name": "phaseIndex", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "check"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["phases"],
                "summary": "Move the qualifiers of a phase into the next phase",
                "parameters": [
                    {"type": "string", "name": "tournamentID", "in": "path", "required": true},
                    {"type": "integer", "name": "phaseIndex", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "advancement"},
                    "409": {"description": "Phase locked"},
                    "422": {"description": "Not enough qualified teams"},
                    "501": {"description": "Elimination qualifiers not supported"}
                }
            }
        },
        "/tournaments/{tournamentID}/teams": {
            "get": {
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "List the team registry",
                "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "teams"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Register a team",
                "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"201": {"description": "team"}, "400": {"description": "Empty name"}, "409": {"description": "Duplicate name"}}
            }
        },
        "/tournaments/{tournamentID}/matches": {
            "get": {
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "List matches",
                "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "matches"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Schedule a match, or both legs in a round-trip tournament",
                "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"201": {"description": "matches"}, "400": {"description": "Illegal pairing or missing date"}}
            }
        },
        "/tournaments/{tournamentID}/groups": {
            "get": {
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "Groups of the active phase and the teams not allocated yet",
                "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "allocation"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "Replace the active phase's allocation with empty groups",
                "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "groups"}, "400": {"description": "Invalid group count"}}
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

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Championship Manager API",
	Description:      "Team registry, match scheduling, standings, group allocation and phase advancement.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
