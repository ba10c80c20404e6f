package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "TIT Academy CRM API",
        "description": "School management CRM: groups, students, attendance, medal rewards and marketplace",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Login and session"},
        {"name": "Groups", "description": "Class management"},
        {"name": "Students", "description": "Student roster and balances"},
        {"name": "Attendance", "description": "Session attendance"},
        {"name": "Medals", "description": "Medal awards and revocations"},
        {"name": "Products", "description": "Marketplace catalog"},
        {"name": "Purchases", "description": "Medal redemptions"},
        {"name": "Dashboard", "description": "Admin summary"},
        {"name": "Reports", "description": "Exports"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "responses": {
                    "200": {"description": "User info and access token"},
                    "400": {"description": "Malformed payload"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "End the current session",
                "responses": {"200": {"description": "Logged out"}}
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user profile",
                "responses": {
                    "200": {"description": "User info"},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        },
        "/groups": {
            "get": {
                "tags": ["Groups"],
                "summary": "List groups",
                "responses": {"200": {"description": "Groups"}}
            },
            "post": {
                "tags": ["Groups"],
                "summary": "Create group",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid payload"}
                }
            }
        },
        "/groups/{id}": {
            "get": {
                "tags": ["Groups"],
                "summary": "Get group",
                "responses": {"200": {"description": "Group"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Groups"],
                "summary": "Update group",
                "responses": {"200": {"description": "Updated"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Groups"],
                "summary": "Delete group",
                "responses": {"200": {"description": "Deleted"}, "404": {"description": "Not found"}}
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students with user and group inlined",
                "responses": {"200": {"description": "Students"}}
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Student code already in use"}
                }
            }
        },
        "/students/current": {
            "get": {
                "tags": ["Students"],
                "summary": "Resolve the student owned by a user account",
                "responses": {
                    "200": {"description": "Student"},
                    "400": {"description": "Missing userId"},
                    "404": {"description": "No student for user"}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "responses": {"200": {"description": "Student"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "responses": {"200": {"description": "Updated"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student",
                "responses": {"200": {"description": "Deleted"}, "404": {"description": "Not found"}}
            }
        },
        "/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List attendance records",
                "responses": {"200": {"description": "Records"}}
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Record attendance",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/attendance/{id}": {
            "put": {
                "tags": ["Attendance"],
                "summary": "Update attendance record",
                "responses": {"200": {"description": "Updated"}, "404": {"description": "Not found"}}
            }
        },
        "/medals": {
            "get": {
                "tags": ["Medals"],
                "summary": "List medals",
                "responses": {"200": {"description": "Medals"}}
            },
            "post": {
                "tags": ["Medals"],
                "summary": "Award a medal",
                "responses": {
                    "201": {"description": "Awarded"},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/medals/{id}": {
            "delete": {
                "tags": ["Medals"],
                "summary": "Revoke a medal",
                "responses": {"200": {"description": "Revoked"}, "404": {"description": "Not found"}}
            }
        },
        "/products": {
            "get": {
                "tags": ["Products"],
                "summary": "List products",
                "responses": {"200": {"description": "Products"}}
            },
            "post": {
                "tags": ["Products"],
                "summary": "Create product",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/products/{id}": {
            "get": {
                "tags": ["Products"],
                "summary": "Get product",
                "responses": {"200": {"description": "Product"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Products"],
                "summary": "Update product",
                "responses": {"200": {"description": "Updated"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Products"],
                "summary": "Delete product",
                "responses": {"200": {"description": "Deleted"}, "404": {"description": "Not found"}}
            }
        },
        "/purchases": {
            "get": {
                "tags": ["Purchases"],
                "summary": "List purchases",
                "responses": {"200": {"description": "Purchases"}}
            },
            "post": {
                "tags": ["Purchases"],
                "summary": "Redeem a product",
                "responses": {
                    "201": {"description": "Recorded"},
                    "400": {"description": "Insufficient medals"},
                    "404": {"description": "Student or product not found"}
                }
            }
        },
        "/dashboard/stats": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard summary",
                "responses": {"200": {"description": "Aggregate counts and attendance rate"}}
            }
        },
        "/reports/medals": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export medal standings as CSV or PDF",
                "responses": {
                    "200": {"description": "File download"},
                    "400": {"description": "Unsupported format"}
                }
            }
        }
    },
    "definitions": {
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
