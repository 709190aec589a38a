package helpers

import (
	"fmt"
	"html"
	"strings"
)

// Field is one label/value row of a form summary.
type Field struct {
	Label string
	Value string
}

func BuildSimpleHTML(title, body string) string {
	return fmt.Sprintf(`
<html>
  <body style="font-family:Arial,sans-serif; background:#f9f9f9;">
    <table width="100%%" cellpadding="0" cellspacing="0" bgcolor="#f9f9f9">
      <tr>
        <td align="center" style="padding:32px 0;">
          <table width="500" bgcolor="#fff" cellpadding="24" cellspacing="0" style="border-radius:8px; box-shadow:0 1px 6px #eee;">
            <tr>
              <td>
                <h2 style="color:#1f9d55; margin-top:0;">%s</h2>
                <div style="font-size:16px; color:#222;">%s</div>
                <hr style="margin:32px 0 16px 0; border:0; border-top:1px solid #eee;">
                <div style="font-size:12px; color:#999;">This message was sent automatically by PedalAds.</div>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>
`, html.EscapeString(title), body)
}

// BuildFieldsHTML renders submitted form fields as an escaped table.
func BuildFieldsHTML(fields []Field) string {
	var b strings.Builder
	b.WriteString(`<table cellpadding="6" cellspacing="0" style="font-size:15px;">`)
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			continue
		}
		fmt.Fprintf(&b, `<tr><td style="color:#666;vertical-align:top;">%s</td><td>%s</td></tr>`,
			html.EscapeString(f.Label),
			strings.ReplaceAll(html.EscapeString(f.Value), "\n", "<br>"),
		)
	}
	b.WriteString(`</table>`)
	return b.String()
}

// BuildLinkButtonHTML renders a paragraph with a call to action link.
func BuildLinkButtonHTML(text, href, label string) string {
	return fmt.Sprintf(`
      <p style="font-size:16px;color:#222;margin:0 0 16px 0;">%s</p>
      <p><a href="%s" style="display:inline-block;padding:12px 24px;background:#1f9d55;color:#fff;text-decoration:none;border-radius:6px;font-weight:600;">%s</a></p>
      <p style="font-size:12px;color:#999;margin-top:16px;">If the button does not work, copy this link: %s</p>
    `, html.EscapeString(text), html.EscapeString(href), html.EscapeString(label), html.EscapeString(href))
}
