package main

import (
	"fmt"

	"github.com/pevans/newsnow/newsapi"
)

type CountriesCmd struct{}

func (c *CountriesCmd) Run(ctx *Context) error {
	fmt.Fprintln(ctx.Out, "Countries:")
	for _, country := range newsapi.Countries {
		marker := " "
		if country.Code == ctx.Config.Defaults.Country {
			marker = "*"
		}
		fmt.Fprintf(ctx.Out, " %s %-4s %s\n", marker, country.Code, country.Name)
	}

	fmt.Fprintln(ctx.Out)
	fmt.Fprintln(ctx.Out, "Categories:")
	for _, category := range newsapi.Categories {
		fmt.Fprintf(ctx.Out, "   %s\n", category)
	}
	return nil
}
