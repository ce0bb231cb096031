package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

var tmpl = htmpl.Must(htmpl.ParseFS(FS, "*.tmpl"))

// Known template names.
const (
	VerifyEmail   = "verify_email"
	ResetPassword = "reset_password"
)

// Subjects per template, used when the job does not carry its own.
var subjects = map[string]string{
	VerifyEmail:   "Email Verification - OurWallet",
	ResetPassword: "Password Reset - OurWallet",
}

// Render renders a named template with data and returns subject, text and
// HTML bodies. Text falls back to the ActionURL so plain-text clients still
// get a working link.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return "", "", "", err
	}
	text = fmt.Sprintf("%v", data["ActionURL"])
	return subject, text, buf.String(), nil
}
