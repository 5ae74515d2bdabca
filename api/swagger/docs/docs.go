// Package docs registers the embedded OpenAPI document consumed by the
// /swagger/*any route (cmd/app/router). Hand-authored rather than
// swag-generated since this module does not run the Go toolchain's
// code-generation step as part of this build.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "corectl API",
        "description": "Control-plane API for a multi-tenant WireGuard VPN service: per-user configs, pairing, and admin management.",
        "version": "1.0"
    },
    "basePath": "/api/v1",
    "paths": {
        "/login": {
            "post": {
                "summary": "Exchange a chat-platform identity for a bearer token"
            }
        },
        "/configs": {
            "get": {
                "summary": "List the caller's configs"
            },
            "post": {
                "summary": "Create a new config"
            }
        },
        "/configs/{id}": {
            "get": {
                "summary": "Get one config"
            },
            "patch": {
                "summary": "Rename a config"
            },
            "delete": {
                "summary": "Remove a config"
            }
        },
        "/configs/{id}/render": {
            "get": {
                "summary": "Render the client WireGuard config text"
            }
        },
        "/configs/{id}/settings": {
            "post": {
                "summary": "Toggle double-VPN for a config"
            }
        },
        "/configs/{id}/pair-code": {
            "get": {
                "summary": "Produce a pair token for a config"
            }
        },
        "/pair": {
            "post": {
                "summary": "Claim a config using a pair token"
            }
        },
        "/admin/{user_id}": {
            "post": {
                "summary": "Grant the ADMIN role"
            },
            "delete": {
                "summary": "Revoke the ADMIN role"
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "corectl API",
	Description:      "Control-plane API for a multi-tenant WireGuard VPN service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
