package logger

import "testing"

func TestRedactor_PersonalData(t *testing.T) {
	r := &redactor{enabled: true}
	out := r.kvs([]interface{}{
		"person_id", "abc",
		"cpf", "11144477735",
		"legal_representative_cpf", "98765432100",
		"email", "a@b.com",
		"Authorization", "Bearer x",
		"username", "admin",
	})
	want := map[string]interface{}{
		"person_id":                "abc",
		"cpf":                      redacted,
		"legal_representative_cpf": redacted,
		"email":                    redacted,
		"Authorization":            redacted,
	}
	for i := 0; i < len(out); i += 2 {
		key := out[i].(string)
		if key == "username" {
			if s, _ := out[i+1].(string); len(s) != len("hash:")+12 {
				t.Fatalf("username: want hashed value got %v", out[i+1])
			}
			continue
		}
		if out[i+1] != want[key] {
			t.Fatalf("%s: want=%v got=%v", key, want[key], out[i+1])
		}
	}
}

func TestRedactor_NestedMapAndJWT(t *testing.T) {
	r := &redactor{enabled: true}
	got := r.value("extra", map[string]interface{}{"cnpj": "11222333000181", "path": "x.png"}).(map[string]interface{})
	if got["cnpj"] != redacted || got["path"] != "x.png" {
		t.Fatalf("nested: %v", got)
	}
	jwt := "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJhZG1pbiJ9.sig"
	if v := r.value("detail", jwt); v != redacted {
		t.Fatalf("jwt: want redacted got %v", v)
	}
}

func TestRedactor_SaltChangesHash(t *testing.T) {
	a := (&redactor{enabled: true}).hash("admin")
	b := (&redactor{enabled: true, salt: "pepper"}).hash("admin")
	if a == b {
		t.Fatalf("salted hash must differ")
	}
}

func TestRedactor_Disabled(t *testing.T) {
	r := &redactor{enabled: false}
	out := r.kvs([]interface{}{"cpf", "11144477735"})
	if out[1] != "11144477735" {
		t.Fatalf("disabled redactor must pass values through")
	}
}

func TestNew_TestModeIsQuiet(t *testing.T) {
	log, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.With("service", "x").Info("hello", "cpf", "1")
}
