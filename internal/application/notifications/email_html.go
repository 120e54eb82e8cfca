package notifications

import (
	"bytes"
	"html/template"
)

var emailTmpl = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html lang="es">
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2 style="margin-bottom: 8px;">{{.Subject}}</h2>
  <p>{{.Body}}</p>
  {{if .Link}}<p><a href="{{.Link}}">Ver pedido</a></p>{{end}}
  <p style="font-size: 12px; color: #6b7280;">Recibes este correo porque estás registrado como contacto de notificaciones.</p>
</body>
</html>`))

func renderHTML(subject, body, link string) (string, error) {
	var buf bytes.Buffer
	err := emailTmpl.Execute(&buf, struct {
		Subject, Body, Link string
	}{subject, body, link})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
