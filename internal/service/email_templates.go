package service

import (
	"fmt"
	"strings"

	"github.com/bienestar-app/bienestar/internal/model"
)

func welcomeEmailTemplate(name, appURL, appName string) (string, string) {
	subject := fmt.Sprintf("¡Bienvenido/a a %s!", appName)
	body := fmt.Sprintf(`Hola %s,

Tu cuenta ya está activa. Cada día puedes anotar algo que agradeces y contarnos cómo te sientes.

Entra aquí: %s

Un abrazo,
El equipo de %s`, name, appURL, appName)

	return subject, body
}

func badgeUnlockedEmailTemplate(name string, badges []model.BadgeDefinition, badgesURL, appName string) (string, string) {
	subject := fmt.Sprintf("¡Desbloqueaste una insignia en %s!", appName)
	if len(badges) > 1 {
		subject = fmt.Sprintf("¡Desbloqueaste %d insignias en %s!", len(badges), appName)
	}

	var list strings.Builder
	for _, b := range badges {
		fmt.Fprintf(&list, "%s %s: %s\n", b.Emoji, b.Name, b.Description)
	}

	body := fmt.Sprintf(`Hola %s,

¡Felicitaciones! Lograste:

%s
Mira todas tus insignias: %s

Un abrazo,
El equipo de %s`, name, list.String(), badgesURL, appName)

	return subject, body
}
