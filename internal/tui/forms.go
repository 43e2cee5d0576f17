package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitchain/internal/constants"
)

type LoginFormModel struct {
	Name  string
	Email string
	Emoji string
}

type HabitFormModel struct {
	Name     string
	Category string
}

type MemberFormModel struct {
	Name     string
	Relation string
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func stringOptions(values []string) []huh.Option[string] {
	opts := make([]huh.Option[string], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(v, v)
	}
	return opts
}

// NewLoginForm creates the email login form
func NewLoginForm(fm *LoginFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Your name (optional)").
				Value(&fm.Name),
			huh.NewInput().
				Title("Email").
				Placeholder("Email (required)").
				Value(&fm.Email).
				Validate(required("Email")),
			huh.NewSelect[string]().
				Title("Avatar").
				Options(stringOptions(constants.Emojis)...).
				Value(&fm.Emoji),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewHabitForm creates the add habit form
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New habit").
				Placeholder(`e.g. "Code 1 hour"`).
				Value(&fm.Name).
				Validate(required("Habit name")),
			huh.NewSelect[string]().
				Title("Category").
				Options(stringOptions(constants.Categories)...).
				Value(&fm.Category),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewMemberForm creates the add member form
func NewMemberForm(fm *MemberFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("e.g. Mom, Rahul...").
				Value(&fm.Name).
				Validate(required("Member name")),
			huh.NewSelect[string]().
				Title("Relation").
				Options(stringOptions(constants.Relations)...).
				Value(&fm.Relation),
		),
	).WithTheme(huh.ThemeDracula())
}
