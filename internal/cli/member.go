package cli

import (
	"github.com/julianstephens/habitchain/internal/tui/components/members"
)

type MemberCmd struct {
	Add    MemberAddCmd    `cmd:"" help:"Share your habits with someone."`
	List   MemberListCmd   `cmd:"" help:"List who your habits are shared with." default:"1"`
	Delete MemberDeleteCmd `cmd:"" help:"Remove a member."`
}

type MemberAddCmd struct {
	UserFlags `embed:""`
	Name      string `arg:"" help:"Member name."`
	Relation  string `help:"Relation to you." default:"${default_relation}"`
}

func (c *MemberAddCmd) Run(ctx *Context) error {
	reqCtx, cancel := ctx.requestContext()
	defer cancel()

	api := ctx.Client()
	u, err := ctx.resolveUser(reqCtx, api, c.UserFlags)
	if err != nil {
		return err
	}
	m, err := api.CreateMember(reqCtx, u.ID, c.Name, c.Relation)
	if err != nil {
		return err
	}
	ctx.printf("Added member %d: %s (%s)\n", m.ID, m.Name, m.Relation)
	return nil
}

type MemberListCmd struct {
	UserFlags `embed:""`
}

func (c *MemberListCmd) Run(ctx *Context) error {
	reqCtx, cancel := ctx.requestContext()
	defer cancel()

	api := ctx.Client()
	u, err := ctx.resolveUser(reqCtx, api, c.UserFlags)
	if err != nil {
		return err
	}
	list, err := api.ListMembers(reqCtx, u.ID)
	if err != nil {
		return err
	}

	ctx.println(members.SharedWith(list))
	for _, m := range list {
		ctx.printf("%3d %s (%s)\n", m.ID, m.Name, m.Relation)
	}
	return nil
}

type MemberDeleteCmd struct {
	ID int `arg:"" help:"Member id."`
}

func (c *MemberDeleteCmd) Run(ctx *Context) error {
	reqCtx, cancel := ctx.requestContext()
	defer cancel()

	if err := ctx.Client().DeleteMember(reqCtx, c.ID); err != nil {
		return err
	}
	ctx.printf("Removed member %d\n", c.ID)
	return nil
}
