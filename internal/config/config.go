package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"student-analytics/internal/publish"
)

type Config struct {
	// Dataset
	DataPath     string
	PrevDataPath string
	DataURL      string
	Students     int
	Seed         int64

	// Artifacts
	ModelPath string
	ReportDir string

	// Scheduler
	ScheduleWeekday string
	ScheduleAt      string

	// SFTP publish target
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPDir                   string
	SFTPKnownHosts            string
	SFTPInsecureIgnoreHostKey bool
	SFTPCompress              bool
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		DataPath:     getenv("DATA_PATH", "data/processed/student_data.csv"),
		PrevDataPath: os.Getenv("PREV_DATA_PATH"),
		DataURL:      os.Getenv("DATA_URL"),
		Students:     getenvInt("N_STUDENTS", 200),
		Seed:         getenvInt64("RANDOM_SEED", 42),

		ModelPath: getenv("MODEL_PATH", "models/risk_predictor.gob"),
		ReportDir: getenv("REPORT_DIR", "reports"),

		ScheduleWeekday: getenv("SCHEDULE_WEEKDAY", "monday"),
		ScheduleAt:      getenv("SCHEDULE_AT", "06:00"),

		SFTPHost:                  os.Getenv("SFTP_HOST"),
		SFTPPort:                  getenvInt("SFTP_PORT", 22),
		SFTPUser:                  os.Getenv("SFTP_USER"),
		SFTPPass:                  os.Getenv("SFTP_PASS"),
		SFTPDir:                   getenv("SFTP_DIR", "/public_html/reports"),
		SFTPKnownHosts:            os.Getenv("SFTP_KNOWN_HOSTS"),
		SFTPInsecureIgnoreHostKey: getenvBool("SFTP_INSECURE_IGNORE_HOSTKEY", true),
		SFTPCompress:              getenvBool("SFTP_COMPRESS", true),
	}
}

// SFTP maps the env-driven settings onto a publish target.
func (c Config) SFTP() publish.Config {
	return publish.Config{
		Host:                  c.SFTPHost,
		Port:                  c.SFTPPort,
		User:                  c.SFTPUser,
		Pass:                  c.SFTPPass,
		RemoteDir:             c.SFTPDir,
		KnownHostsFile:        c.SFTPKnownHosts,
		InsecureIgnoreHostKey: c.SFTPInsecureIgnoreHostKey,
		Compress:              c.SFTPCompress,
	}
}

// PublishEnabled reports whether the SFTP target is configured at all.
func (c Config) PublishEnabled() bool {
	return c.SFTPHost != "" && c.SFTPUser != "" && c.SFTPPass != ""
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvInt64(k string, def int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
