package account

import (
	"errors"
	"testing"

	"github.com/mikios34/choonpaan/entity"
)

func TestRegisterFormValidateOrder(t *testing.T) {
	valid := RegisterForm{
		Email:           "d@example.com",
		Name:            "Dawit",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		UserType:        entity.UserTypeDriver,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}

	cases := []struct {
		name  string
		edit  func(*RegisterForm)
		field string
		kind  entity.ValidationKind
	}{
		{"all empty", func(f *RegisterForm) { *f = RegisterForm{} }, "email", entity.EmptyField},
		{"blank email", func(f *RegisterForm) { f.Email = "  "; f.Name = "" }, "email", entity.EmptyField},
		{"no name", func(f *RegisterForm) { f.Name = ""; f.Password = "" }, "name", entity.EmptyField},
		{"no password", func(f *RegisterForm) { f.Password = ""; f.ConfirmPassword = "" }, "password", entity.EmptyField},
		{"no confirm", func(f *RegisterForm) { f.ConfirmPassword = "" }, "confirmPassword", entity.EmptyField},
		{"mismatch", func(f *RegisterForm) { f.ConfirmPassword = "secret2" }, "confirmPassword", entity.PasswordMismatch},
		{"admin type", func(f *RegisterForm) { f.UserType = entity.UserTypeAdmin }, "userType", entity.InvalidUserType},
		{"no type", func(f *RegisterForm) { f.UserType = "" }, "userType", entity.InvalidUserType},
	}
	for _, tc := range cases {
		form := valid
		tc.edit(&form)
		var ve *entity.ValidationError
		if err := form.Validate(); !errors.As(err, &ve) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
		if ve.Field != tc.field || ve.Kind != tc.kind {
			t.Fatalf("%s: expected %s/%s, got %s/%s", tc.name, tc.field, tc.kind, ve.Field, ve.Kind)
		}
	}
}

func TestCredentialsValidate(t *testing.T) {
	if err := (Credentials{Email: "a@example.com", Password: "x"}).Validate(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	var ve *entity.ValidationError
	if err := (Credentials{Password: "x"}).Validate(); !errors.As(err, &ve) || ve.Field != "email" {
		t.Fatalf("expected email required, got %v", err)
	}
	if err := (Credentials{Email: "a@example.com"}).Validate(); !errors.As(err, &ve) || ve.Field != "password" {
		t.Fatalf("expected password required, got %v", err)
	}
}
