package logging

import "log/slog"

func JobID(id string) slog.Attr {
	return slog.String("job_id", id)
}

func Path(path string) slog.Attr {
	return slog.String("path", path)
}

func Steps(n int) slog.Attr {
	return slog.Int("steps", n)
}

func Error(err error) slog.Attr {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return slog.String("error", msg)
}
