// Package i18n translates the handful of labels the front ends show.
package i18n

import (
	"log/slog"
	"strings"
	"sync"

	"aerialtimer/internal/core/interval"
	"github.com/jeandeaual/go-locale"
)

// Supported languages besides the English keys.
var supported = []string{"pt", "es", "ru"}

var (
	mu   sync.RWMutex
	lang = "en"
)

var translations = map[string]map[string]string{
	"Prepare":     {"pt": "Preparar", "es": "Preparar", "ru": "Подготовка"},
	"Work":        {"pt": "Trabalho", "es": "Trabajo", "ru": "Работа"},
	"Rest":        {"pt": "Descanso", "es": "Descanso", "ru": "Отдых"},
	"Set rest":    {"pt": "Descanso entre séries", "es": "Descanso entre series", "ru": "Отдых между сетами"},
	"Finished":    {"pt": "Concluído", "es": "Terminado", "ru": "Готово"},
	"Start":       {"pt": "Iniciar", "es": "Iniciar", "ru": "Старт"},
	"Pause":       {"pt": "Pausar", "es": "Pausar", "ru": "Пауза"},
	"Resume":      {"pt": "Continuar", "es": "Reanudar", "ru": "Продолжить"},
	"Reset":       {"pt": "Resetar", "es": "Reiniciar", "ru": "Сброс"},
	"Skip":        {"pt": "Pular", "es": "Saltar", "ru": "Пропустить"},
	"Round":       {"pt": "Rodada", "es": "Ronda", "ru": "Раунд"},
	"Set":         {"pt": "Série", "es": "Serie", "ru": "Сет"},
	"Preferences": {"pt": "Preferências", "es": "Preferencias", "ru": "Настройки"},
	"Preset":      {"pt": "Predefinição", "es": "Predefinido", "ru": "Шаблон"},
	"Save":        {"pt": "Salvar", "es": "Guardar", "ru": "Сохранить"},
	"Cancel":      {"pt": "Cancelar", "es": "Cancelar", "ru": "Отмена"},
	"History":     {"pt": "Histórico", "es": "Historial", "ru": "История"},
	"Show timer":  {"pt": "Mostrar timer", "es": "Mostrar temporizador", "ru": "Показать таймер"},
	"Quit":        {"pt": "Sair", "es": "Salir", "ru": "Выход"},
	"Stop the timer to edit the workout": {
		"pt": "Pare o timer para editar o treino",
		"es": "Detén el temporizador para editar el entrenamiento",
		"ru": "Остановите таймер, чтобы изменить тренировку",
	},
}

// Setup selects the UI language. A non-empty override wins; otherwise the
// first system locale decides, falling back to English.
func Setup(override string, logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}
	selected := "en"
	if forced := strings.TrimSpace(override); forced != "" {
		selected = match(forced)
		logger.Debug("language forced", "lang", forced, "selected", selected)
	} else if userLocales, err := locale.GetLocales(); err != nil {
		logger.Debug("could not get user locale, defaulting to english", "error", err)
	} else if len(userLocales) > 0 {
		selected = match(userLocales[0])
		logger.Debug("detected user locale", "locale", userLocales[0], "selected", selected)
	}

	SetLang(selected)
	return selected
}

func match(tag string) string {
	tag = strings.ToLower(tag)
	for _, candidate := range supported {
		if strings.HasPrefix(tag, candidate) {
			return candidate
		}
	}
	return "en"
}

// SetLang switches the language directly.
func SetLang(value string) {
	mu.Lock()
	defer mu.Unlock()
	lang = value
}

// Lang returns the active language.
func Lang() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}

// T translates key, returning it unchanged when no translation exists.
func T(key string) string {
	if translated, ok := translations[key][Lang()]; ok {
		return translated
	}
	return key
}

// Phase returns the display label of phase.
func Phase(phase interval.Phase) string {
	switch phase {
	case interval.PhasePrepare:
		return T("Prepare")
	case interval.PhaseWork:
		return T("Work")
	case interval.PhaseRest:
		return T("Rest")
	case interval.PhaseSetRest:
		return T("Set rest")
	case interval.PhaseFinished:
		return T("Finished")
	default:
		return string(phase)
	}
}
