package hydrate

import (
	"fmt"
	"testing"
)

func TestHook_FiresForAbsentField(t *testing.T) {
	type User struct {
		FirstName   string
		LastName    string
		DisplayName string
	}
	RegisterHook[User]("displayName", func(u *User, value any) error {
		if s, ok := value.(string); ok && s != "" {
			u.DisplayName = s
			return nil
		}
		u.DisplayName = u.FirstName + " " + u.LastName
		return nil
	})
	t.Cleanup(ClearHooks[User])

	user, err := New[User](Record{
		"first_name": "Ada",
		"last_name":  "Lovelace",
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.DisplayName != "Ada Lovelace" {
		t.Errorf("DisplayName = %q, want %q", user.DisplayName, "Ada Lovelace")
	}
}

func TestHook_PrecedenceOverDirectAssignment(t *testing.T) {
	type User struct {
		DisplayName string
	}
	RegisterHook[User]("displayName", func(u *User, value any) error {
		// The hook receives the raw input value and decides the final value.
		u.DisplayName = fmt.Sprintf("%v!", value)
		return nil
	})
	t.Cleanup(ClearHooks[User])

	user, err := New[User](Record{"display_name": "X"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.DisplayName != "X!" {
		t.Errorf("DisplayName = %q, want %q (hook decides, not direct assignment)", user.DisplayName, "X!")
	}
}

func TestHook_FiresForFalsyField(t *testing.T) {
	type Account struct {
		Quota int
	}
	RegisterHook[Account]("quota", func(a *Account, value any) error {
		if n, ok := value.(int); ok && n > 0 {
			a.Quota = n
			return nil
		}
		a.Quota = 100
		return nil
	})
	t.Cleanup(ClearHooks[Account])

	// Explicitly sent as falsy: the hook still decides the final value.
	account, err := New[Account](Record{"quota": 0}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Quota != 100 {
		t.Errorf("Quota = %d, want 100", account.Quota)
	}
}

func TestHook_FiresOncePerHydration(t *testing.T) {
	type User struct {
		Token string
	}
	calls := 0
	RegisterHook[User]("token", func(u *User, value any) error {
		calls++
		u.Token = fmt.Sprintf("token-%d", calls)
		return nil
	})
	t.Cleanup(ClearHooks[User])

	user, err := New[User](Record{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Errorf("hook calls = %d, want 1", calls)
	}
	if user.Token != "token-1" {
		t.Errorf("Token = %q, want %q", user.Token, "token-1")
	}
}

func TestHook_NestedTypeHooks(t *testing.T) {
	type Role struct {
		Ident string
		Label string
	}
	type User struct {
		Roles []Role
	}
	RegisterHook[Role]("label", func(r *Role, value any) error {
		if s, ok := value.(string); ok && s != "" {
			r.Label = s
			return nil
		}
		r.Label = "role:" + r.Ident
		return nil
	})
	t.Cleanup(ClearHooks[Role])

	user, err := New[User](Record{
		"roles": []any{Record{"ident": "*"}},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(user.Roles) != 1 {
		t.Fatalf("len(Roles) = %d, want 1", len(user.Roles))
	}
	if user.Roles[0].Label != "role:*" {
		t.Errorf("Roles[0].Label = %q, want %q", user.Roles[0].Label, "role:*")
	}
}

func TestHook_ErrorPropagates(t *testing.T) {
	type User struct {
		Age int
	}
	RegisterHook[User]("age", func(u *User, value any) error {
		n, ok := value.(int)
		if !ok {
			return fmt.Errorf("age must be an integer, got %T", value)
		}
		u.Age = n
		return nil
	})
	t.Cleanup(ClearHooks[User])

	_, err := New[User](Record{"age": "old"}, nil)
	if err == nil {
		t.Fatal("expected hook error, got nil")
	}
}

func TestCompleteDefaults_Idempotent(t *testing.T) {
	type User struct {
		FirstName   string
		LastName    string
		DisplayName string
	}
	RegisterHook[User]("displayName", func(u *User, value any) error {
		if s, ok := value.(string); ok && s != "" {
			u.DisplayName = s
			return nil
		}
		u.DisplayName = u.FirstName + " " + u.LastName
		return nil
	})
	t.Cleanup(ClearHooks[User])

	user, err := New[User](Record{
		"first_name": "Ada",
		"last_name":  "Lovelace",
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Mutate an input of the hook: a second pass must not recompute,
	// because DisplayName is no longer empty.
	user.FirstName = "Augusta"
	if err := CompleteDefaults(user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.DisplayName != "Ada Lovelace" {
		t.Errorf("DisplayName = %q, want %q (second pass must not touch non-empty fields)", user.DisplayName, "Ada Lovelace")
	}
}

func TestCompleteDefaults_TargetValidation(t *testing.T) {
	type User struct {
		Name string
	}

	if err := CompleteDefaults(User{}); err == nil {
		t.Error("expected error for non-pointer target")
	}
	if err := CompleteDefaults((*User)(nil)); err == nil {
		t.Error("expected error for nil pointer target")
	}
}

func TestClearHooks(t *testing.T) {
	type User struct {
		Name string
	}
	RegisterHook[User]("name", func(u *User, value any) error {
		u.Name = "hooked"
		return nil
	})
	ClearHooks[User]()

	user, err := New[User](Record{"name": "direct"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "direct" {
		t.Errorf("Name = %q, want %q (hook was cleared)", user.Name, "direct")
	}
}
