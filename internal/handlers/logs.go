package handlers

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	helpers "pedalads/internal/utils/helpers"
)

// AdminLogsHandler reads the JSON log files written by the logger: the
// current app.log and lumberjack backups app-<timestamp>.log[.gz].
type AdminLogsHandler struct {
	LogDir    string
	Retention int // days
	now       func() time.Time
}

func NewAdminLogsHandler(dir string, retentionDays int) *AdminLogsHandler {
	if retentionDays <= 0 {
		retentionDays = 7
	}
	return &AdminLogsHandler{LogDir: dir, Retention: retentionDays, now: time.Now}
}

// ListDays
// @Summary      Days with logs
// @Description  Dates (YYYY-MM-DD) within the retention window that have log files.
// @Tags         admin-logs
// @Security     ApiKeyAuth
// @Produce      json
// @Success      200 {object} map[string][]string "days"
// @Failure      401 {object} helpers.Response
// @Router       /api/admin/logs/days [get]
func (h *AdminLogsHandler) ListDays(w http.ResponseWriter, r *http.Request) {
	today := h.now().Local()
	days := []string{}
	for i := 0; i < h.Retention; i++ {
		d := today.AddDate(0, 0, -i).Format(dayLayout)
		if files, err := h.listFilesForDay(d); err == nil && len(files) > 0 {
			days = append(days, d)
		}
	}
	sort.Strings(days)
	helpers.Raw(w, http.StatusOK, map[string]interface{}{"days": days})
}

// GetLogs
// @Summary      Log lines for a day
// @Description  JSON log entries for one day, filtered by level, hour and substring.
// @Tags         admin-logs
// @Security     ApiKeyAuth
// @Produce      json
// @Param        day     query  string true  "Date (YYYY-MM-DD)"
// @Param        level   query  string false "Comma separated levels: debug,info,warn,error"
// @Param        hour    query  int    false "Hour (0-23)"
// @Param        q       query  string false "Substring, case-insensitive"
// @Param        limit   query  int    false "Limit (default 200, max 1000)"
// @Param        cursor  query  int    false "Lines to skip"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} helpers.Response
// @Failure      404 {object} helpers.Response
// @Router       /api/admin/logs [get]
func (h *AdminLogsHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	day := q.Get("day")
	if !reDay.MatchString(day) {
		helpers.Error(w, http.StatusBadRequest, "bad day")
		return
	}

	levelSet := toUpperSet(q.Get("level"))

	var qre *regexp.Regexp
	if s := strings.TrimSpace(q.Get("q")); s != "" {
		qre = regexp.MustCompile("(?i)" + regexp.QuoteMeta(s))
	}

	hour := -1
	if hv, err := strconv.Atoi(q.Get("hour")); err == nil && hv >= 0 && hv <= 23 {
		hour = hv
	}

	limit := clampAtoi(q.Get("limit"), 200, 1, 1000)
	cursor := clampAtoi(q.Get("cursor"), 0, 0, 10_000_000)

	lineNo := 0
	items := []json.RawMessage{}

	err := h.forEachDayLine(day, func(raw []byte) bool {
		lineNo++
		if lineNo <= cursor {
			return true
		}
		if qre != nil && !qre.Match(raw) {
			return true
		}
		var entry logEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return true
		}
		if len(levelSet) > 0 && !levelSet[strings.ToUpper(entry.Level)] {
			return true
		}
		if hour >= 0 {
			if t, ok := parseLogTime(entry.Time); ok && t.Hour() != hour {
				return true
			}
		}
		items = append(items, append([]byte{}, raw...))
		return len(items) < limit
	})
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "day not found")
		return
	}

	helpers.Raw(w, http.StatusOK, map[string]interface{}{
		"day":        day,
		"items":      items,
		"nextCursor": lineNo,
	})
}

// Stats
// @Summary      Hourly log counts
// @Description  Count of entries per hour and level for one day.
// @Tags         admin-logs
// @Security     ApiKeyAuth
// @Produce      json
// @Param        day query string true "Date (YYYY-MM-DD)"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} helpers.Response
// @Router       /api/admin/logs/stats [get]
func (h *AdminLogsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	if !reDay.MatchString(day) {
		helpers.Error(w, http.StatusBadRequest, "bad day")
		return
	}

	stats := make(map[int]map[string]int, 24)
	for hr := 0; hr < 24; hr++ {
		stats[hr] = map[string]int{}
	}

	_ = h.forEachDayLine(day, func(raw []byte) bool {
		var entry logEntry
		if err := json.Unmarshal(raw, &entry); err != nil || entry.Level == "" {
			return true
		}
		if t, ok := parseLogTime(entry.Time); ok {
			stats[t.Hour()][strings.ToUpper(entry.Level)]++
		}
		return true
	})

	helpers.Raw(w, http.StatusOK, map[string]interface{}{
		"day":   day,
		"stats": stats,
	})
}

const dayLayout = "2006-01-02"

var reDay = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type logEntry struct {
	Time  string `json:"time"`
	Level string `json:"level"`
}

// parseLogTime accepts zap's ISO8601 encoding and RFC 3339.
func parseLogTime(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02T15:04:05.000Z0700", time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (h *AdminLogsHandler) listFilesForDay(day string) ([]string, error) {
	entries, err := os.ReadDir(h.LogDir)
	if err != nil {
		return nil, err
	}
	today := h.now().Local().Format(dayLayout)

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == "app.log" && day == today {
			files = append(files, filepath.Join(h.LogDir, name))
			continue
		}
		// lumberjack backups: app-2025-09-11T12-34-56.123.log[.gz]
		if strings.HasPrefix(name, "app-"+day) &&
			(strings.HasSuffix(name, ".log") || strings.HasSuffix(name, ".gz")) {
			files = append(files, filepath.Join(h.LogDir, name))
		}
	}
	// backups sort chronologically, app.log last
	sort.Slice(files, func(i, j int) bool {
		bi, bj := filepath.Base(files[i]), filepath.Base(files[j])
		if (bi == "app.log") != (bj == "app.log") {
			return bj == "app.log"
		}
		return bi < bj
	})
	return files, nil
}

func (h *AdminLogsHandler) forEachDayLine(day string, handle func([]byte) bool) error {
	files, err := h.listFilesForDay(day)
	if err != nil || len(files) == 0 {
		return os.ErrNotExist
	}
	for _, path := range files {
		if !scanFile(path, handle) {
			break
		}
	}
	return nil
}

// scanFile feeds each line to handle and reports whether to keep going.
func scanFile(path string, handle func([]byte) bool) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return true
		}
		defer gz.Close()
		reader = gz
	}

	sc := bufio.NewScanner(reader)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if !handle(sc.Bytes()) {
			return false
		}
	}
	return true
}

func toUpperSet(csv string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(csv, ",") {
		if p = strings.TrimSpace(p); p != "" {
			m[strings.ToUpper(p)] = true
		}
	}
	return m
}

func clampAtoi(s string, def, min, max int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
