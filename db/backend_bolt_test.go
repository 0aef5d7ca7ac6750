package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBoltBackend(t *testing.T) {
	var (
		fileName = filepath.Join(os.TempDir(), "TestBoltBackend.bolt")
		cfg      = NewBoltConfig(fileName)
		be       = NewBoltBackend(cfg)
	)

	os.Remove(fileName)

	if err := be.Open(); err != nil {
		t.Fatal(err)
	}

	defer func() {
		if err := be.Close(); err != nil {
			t.Error(err)
		}
		if err := os.Remove(fileName); err != nil {
			t.Error(err)
		}
	}()

	if _, err := be.Get("test1", []byte("does-not-exist")); err != ErrKeyNotFound {
		t.Errorf("Expected err=%s but actual=%s", ErrKeyNotFound, err)
	}

	if err := be.Put("test1", []byte("hello"), []byte("world")); err != nil {
		t.Error(err)
	}

	v, err := be.Get("test1", []byte("hello"))
	if err != nil {
		t.Error(err)
	}

	if expected, actual := "world", string(v); actual != expected {
		t.Errorf("Retrieved value did not match inserted value, expected=%v but actual=%v", expected, actual)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := be.Put("test2", []byte(k), []byte(k)); err != nil {
			t.Fatal(err)
		}
	}
	if n, err := be.Len("test2"); err != nil {
		t.Fatal(err)
	} else if expected, actual := 3, n; actual != expected {
		t.Errorf("Expected len=%v but actual=%v", expected, actual)
	}

	var forward, reverse string
	if err := be.EachRow("test2", func(k []byte, _ []byte) { forward += string(k) }); err != nil {
		t.Fatal(err)
	}
	if err := be.EachRowReverseWithBreak("test2", func(k []byte, _ []byte) bool {
		reverse += string(k)
		return len(reverse) < 2
	}); err != nil {
		t.Fatal(err)
	}
	if expected, actual := "abc", forward; actual != expected {
		t.Errorf("Expected forward iteration=%v but actual=%v", expected, actual)
	}
	if expected, actual := "cb", reverse; actual != expected {
		t.Errorf("Expected reverse iteration=%v but actual=%v", expected, actual)
	}

	if err := be.Delete("test2", []byte("a")); err != nil {
		t.Fatal(err)
	}
	if _, err := be.Get("test2", []byte("a")); err != ErrKeyNotFound {
		t.Errorf("Expected err=%s after delete but actual=%s", ErrKeyNotFound, err)
	}

	if err := be.Drop("test2", "never-existed"); err != nil {
		t.Fatal(err)
	}
	if n, err := be.Len("test2"); err != nil {
		t.Fatal(err)
	} else if expected, actual := 0, n; actual != expected {
		t.Errorf("Expected len after drop=%v but actual=%v", expected, actual)
	}
}
