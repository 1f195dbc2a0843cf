package cli

import (
	"context"
	"fmt"
)

func (a *App) Domains(ctx context.Context) error {
	domains, err := a.admin.Domains(ctx)
	if err != nil {
		return err
	}
	for _, d := range domains {
		fmt.Fprintf(a.out, "%d\t%s\t%s\t(%.0f, %.0f)\n", d.ID, d.Code, d.Name, d.CoordX, d.CoordY)
	}
	return nil
}

func (a *App) AdminLocations(ctx context.Context) error {
	locations, err := a.admin.Locations(ctx)
	if err != nil {
		return err
	}
	for _, l := range locations {
		lock := "unlocked"
		if !l.Unlocked {
			lock = "locked"
		}
		fmt.Fprintf(a.out, "%d\t%s\t%s\t%s\t%s\n", l.ID, l.DomainCode, l.Code, l.Name, lock)
	}
	return nil
}

func (a *App) Characters(ctx context.Context) error {
	characters, err := a.admin.Characters(ctx)
	if err != nil {
		return err
	}
	for _, c := range characters {
		fmt.Fprintf(a.out, "%d\t%s\t%s\n", c.ID, c.Name, c.Role)
	}
	return nil
}

// Upload sends a local image and prints the URL to store in a location
// or character.
func (a *App) Upload(ctx context.Context, path string) error {
	res, err := a.admin.UploadImage(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Uploaded: %s\n", res.URL)
	return nil
}
