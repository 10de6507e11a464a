package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Bank Back-Office API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Bank Back-Office API",
    "version": "1.0.0"
  },
  "paths": {
    "/customers/individual": {
      "post": {
        "summary": "Register an individual customer",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["document", "name", "birthDate"],
                "properties": {
                  "document": {"type": "string", "example": "123.456.789-00"},
                  "name": {"type": "string"},
                  "birthDate": {"type": "string", "example": "1990-01-01"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created with a zero-balance checking account"},
          "400": {"description": "Validation error"},
          "422": {"description": "Document already registered"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/customers/organization": {
      "post": {
        "summary": "Register an organization customer",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["document", "name"],
                "properties": {
                  "document": {"type": "string", "example": "12.345.678/0009-00"},
                  "name": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created with a zero-balance checking account"},
          "400": {"description": "Validation error"},
          "422": {"description": "Document already registered"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/customers": {
      "get": {
        "summary": "List customers",
        "parameters": [
          {
            "name": "category",
            "in": "query",
            "required": false,
            "schema": {
              "type": "string",
              "enum": ["INDIVIDUAL", "ORGANIZATION"]
            }
          }
        ],
        "responses": {
          "200": {"description": "Customers fetched"},
          "400": {"description": "Validation error"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/operations/savings-account": {
      "post": {
        "summary": "Open a savings account",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["document"],
                "properties": {
                  "document": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Savings account opened"},
          "404": {"description": "Customer not found"},
          "422": {"description": "Organizations may not hold savings accounts"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/operations/deposit": {
      "post": {
        "summary": "Deposit into an account",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["accountNumber", "amount"],
                "properties": {
                  "accountNumber": {"type": "integer", "format": "int64"},
                  "amount": {"type": "string", "example": "100.50"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Deposit applied"},
          "400": {"description": "Validation error"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/operations/withdraw": {
      "post": {
        "summary": "Withdraw from an account",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["accountNumber", "amount"],
                "properties": {
                  "accountNumber": {"type": "integer", "format": "int64"},
                  "amount": {"type": "string", "example": "100.00"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Withdrawal applied"},
          "400": {"description": "Validation error"},
          "404": {"description": "Account not found"},
          "422": {"description": "Insufficient balance"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/operations/transfer": {
      "post": {
        "summary": "Transfer between two accounts",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["sourceAccountNumber", "destAccountNumber", "amount"],
                "properties": {
                  "sourceAccountNumber": {"type": "integer", "format": "int64"},
                  "destAccountNumber": {"type": "integer", "format": "int64"},
                  "amount": {"type": "string", "example": "100.00"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Transfer applied atomically"},
          "400": {"description": "Validation error"},
          "404": {"description": "Account not found"},
          "422": {"description": "Insufficient balance"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/operations/invest": {
      "post": {
        "summary": "Contribute to the customer's investment account",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["document", "amount"],
                "properties": {
                  "document": {"type": "string"},
                  "amount": {"type": "string", "example": "50.00"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Contribution applied"},
          "400": {"description": "Validation error"},
          "404": {"description": "Customer not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/operations/balance/{accountNumber}": {
      "get": {
        "summary": "Fetch an account balance",
        "parameters": [
          {
            "name": "accountNumber",
            "in": "path",
            "required": true,
            "schema": {
              "type": "integer",
              "format": "int64"
            }
          }
        ],
        "responses": {
          "200": {"description": "Balance fetched"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/operations/accrue-yield": {
      "post": {
        "summary": "Apply monthly yield to every investment account",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "responses": {
          "200": {"description": "Batch report with succeeded and failed account numbers"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    }
  },
  "components": {
    "securitySchemes": {
      "BasicAuth": {
        "type": "http",
        "scheme": "basic"
      }
    }
  }
}`
