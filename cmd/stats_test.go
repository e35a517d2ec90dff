package cmd

import (
	"strings"
	"testing"
)

func TestStats(t *testing.T) {
	t.Run("item stats", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("write", "healthcare-2026", "speech", speechV1)
		env.run("write", "healthcare-2026", "speech", speechV2, "-M")
		env.run("write", "healthcare-2026", "speech", speechV3, "-a", "editor-1")

		out := env.run("stats", "healthcare-2026", "speech")
		env.contains(out, "Versions:  3 (1 major)")
		env.contains(out, "tester")
		env.contains(out, "editor-1")
	})

	t.Run("contributors ordered by count", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("write", "healthcare-2026", "speech", speechV1, "-a", "editor-1")
		env.run("write", "healthcare-2026", "speech", speechV2, "-a", "speechwriter")
		env.run("write", "healthcare-2026", "speech", speechV3, "-a", "speechwriter")

		out := env.run("stats", "healthcare-2026", "speech", "-o", "json")
		sw := strings.Index(out, "speechwriter")
		ed := strings.Index(out, "editor-1")
		if sw == -1 || ed == -1 || sw > ed {
			t.Errorf("speechwriter (2 versions) should come before editor-1 (1), got: %s", out)
		}
		env.contains(out, `"total_versions":3`)
	})

	t.Run("global stats", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("write", "healthcare-2026", "speech", speechV1)
		env.run("write", "healthcare-2026", "speech", speechV2)
		env.run("write", "jordan-lee", "bio", "Jordan Lee grew up in the valley.")
		env.run("tag", "add", "jordan-lee", "bio", "1", "approved")
		env.run("compare", "healthcare-2026", "speech", "1", "2")

		out := env.run("stats", "-o", "json")
		env.contains(out, `"items":2`)
		env.contains(out, `"total_versions":3`)
		env.contains(out, `"tags":1`)
		env.contains(out, `"comparisons":1`)
	})

	t.Run("stats on missing item fails", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("stats", "missing", "speech")
		if err == nil {
			t.Error("stats on missing item should fail")
		}
	})

	t.Run("single argument rejected", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("stats", "healthcare-2026")
		if err == nil {
			t.Error("stats with one argument should fail")
		}
	})
}
