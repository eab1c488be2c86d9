package cron

import (
	"testing"

	"kms.GO/core/registry"
)

func TestRegisterAndJobs(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	defer Unregister("test:noop")

	ran := false
	Register("test:noop", "@daily", func(args ...string) { ran = true })

	jobs := Jobs()
	job, ok := jobs["test:noop"]
	if !ok {
		t.Fatal("registered job missing from Jobs()")
	}
	if job.Schedule != "@daily" {
		t.Errorf("schedule = %q", job.Schedule)
	}
	job.Run()
	if !ran {
		t.Error("job function not carried through")
	}
}

func TestRegisterAfterLockPanics(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	defer registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)

	Jobs() // first read locks the registry

	defer func() {
		if recover() == nil {
			t.Error("Register on a locked registry must panic")
		}
	}()
	Register("test:late", "@hourly", func(...string) {})
}

func TestDuplicateRegisterPanics(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	defer Unregister("test:dup")

	Register("test:dup", "@daily", func(...string) {})

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register must panic")
		}
	}()
	Register("test:dup", "@daily", func(...string) {})
}
