package bootstrap

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ServerAddr string
	LogLevel   string

	CaptureSource string
	ObsHost       string
	ObsPort       int
	ObsPassword   string
	ObsSource     string
	DeviceIndex   int

	CaptureWarningCount int
	CaptureFatalCount   int

	OcrDisabled  bool
	OcrLanguage  string
	TessdataPath string

	PokedexPath string

	SpeechBackend      string
	VoicevoxURL        string
	VoicevoxSpeaker    int
	VoicevoxVolume     float64
	VoicevoxSpeed      float64
	BouyomichanURL     string
	BouyomichanSpeed   int
	SpeechWarningCount int
	SpeechFatalCount   int
	SpeechQueueSize    int
	AudioCommand       []string

	PollIntervalMs   int
	ScreenshotDir    string
	ScreenshotBuffer int
	VisionWorkers    int

	NotifiesLog      bool
	NotifiesAllyTeam bool
	AllyHpFormat     string

	ShutdownTimeoutSec int
}

func LoadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", "localhost:8793"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		CaptureSource: getEnv("CAPTURE_SOURCE", "obs"),
		ObsHost:       getEnv("OBS_HOST", "[::1]"),
		ObsPort:       getEnvInt("OBS_PORT", 4455),
		ObsPassword:   getEnv("OBS_PASSWORD", ""),
		ObsSource:     getEnv("OBS_SOURCE", "映像キャプチャデバイス"),
		DeviceIndex:   getEnvInt("DEVICE_INDEX", 0),

		CaptureWarningCount: getEnvInt("CAPTURE_WARNING_COUNT", 5),
		CaptureFatalCount:   getEnvInt("CAPTURE_FATAL_COUNT", 15),

		OcrDisabled:  getEnv("OCR_DISABLED", "false") == "true",
		OcrLanguage:  getEnv("OCR_LANGUAGE", "jpn"),
		TessdataPath: getEnv("TESSDATA_PATH", ""),

		PokedexPath: getEnv("POKEDEX_PATH", "pokedex.db"),

		SpeechBackend:      getEnv("SPEECH_BACKEND", "voicevox"),
		VoicevoxURL:        getEnv("VOICEVOX_URL", "http://localhost:50021"),
		VoicevoxSpeaker:    getEnvInt("VOICEVOX_SPEAKER", 1),
		VoicevoxVolume:     getEnvFloat("VOICEVOX_VOLUME", 1.0),
		VoicevoxSpeed:      getEnvFloat("VOICEVOX_SPEED", 1.7),
		BouyomichanURL:     getEnv("BOUYOMICHAN_URL", "http://localhost:50080"),
		BouyomichanSpeed:   getEnvInt("BOUYOMICHAN_SPEED", 150),
		SpeechWarningCount: getEnvInt("SPEECH_WARNING_COUNT", 5),
		SpeechFatalCount:   getEnvInt("SPEECH_FATAL_COUNT", 15),
		SpeechQueueSize:    getEnvInt("SPEECH_QUEUE_SIZE", 10),
		AudioCommand:       strings.Fields(getEnv("AUDIO_COMMAND", "aplay -q -")),

		PollIntervalMs:   getEnvInt("POLL_INTERVAL_MS", 100),
		ScreenshotDir:    getEnv("SCREENSHOT_DIR", "screenshots"),
		ScreenshotBuffer: getEnvInt("SCREENSHOT_BUFFER", 10),
		VisionWorkers:    getEnvInt("VISION_WORKERS", 3),

		NotifiesLog:      getEnv("NOTIFIES_LOG", "true") == "true",
		NotifiesAllyTeam: getEnv("NOTIFIES_ALLY_TEAM", "false") == "true",
		AllyHpFormat:     getEnv("ALLY_HP_FORMAT", "both"),

		ShutdownTimeoutSec: getEnvInt("SHUTDOWN_TIMEOUT_SEC", 60),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
