// Package template renders expanded cases against their variables.
//
// Strings inside a case that contain "{{" are executed as text/template
// templates with the sprig function library. Variables are the suite's
// globalctx values overlaid by the case's own "context" mapping:
//
//	context.yaml:   base_url: http://localhost:8080
//	1_login.yaml:   desc: Login
//	                context: {user: admin}
//	                request:
//	                  url: "{{ .base_url }}/login"
//	                  body: '{"user": "{{ .user | upper }}"}'
//	                  cert: '{{ file "certs/client.pem" }}'
//
// Referencing an unknown variable is an error. The "file" function reads a
// file relative to the suite directory recorded under globalctx.CasesDirKey.
package template
