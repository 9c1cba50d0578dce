package commands

import (
	"slices"

	"github.com/spf13/cobra"
	"go.trai.ch/firedrake-install/internal/app"
	"go.trai.ch/firedrake-install/internal/core/domain"
)

// installFlags are the flags shared by install and update.
type installFlags struct {
	venvName         string
	noPackageManager bool
	sudo             bool
	developer        bool
	addons           []string
	disableSSH       bool
	minimalPETSc     bool
	honourPETScDir   bool
	rebuild          bool
	clean            bool
	writeCache       bool
	manifest         string
	verbose          bool
	outputMode       string
}

func (f *installFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.venvName, "venv-name", domain.DefaultVenvName, "Directory of the virtual environment")
	flags.BoolVar(&f.noPackageManager, "no-package-manager", false, "Do not install system packages with apt or brew")
	flags.BoolVar(&f.sudo, "sudo", false, "Run the system package manager with sudo")
	flags.BoolVar(&f.developer, "developer", false, "Install Firedrake components as editable source trees")
	flags.StringArrayVar(&f.addons, "install", nil, "Also install the named add-on package (repeatable)")
	flags.BoolVar(&f.disableSSH, "disable-ssh", false, "Clone repositories over HTTPS instead of SSH")
	flags.BoolVar(&f.minimalPETSc, "minimal-petsc", false, "Build PETSc with the minimal set of external packages")
	flags.BoolVar(&f.honourPETScDir, "honour-petsc-dir", false, "Use the PETSc installation named by PETSC_DIR and PETSC_ARCH")
	flags.BoolVar(&f.rebuild, "rebuild", false, "Rebuild every package, even when its source did not change")
	flags.BoolVar(&f.clean, "clean", false, "Uninstall packages before reinstalling them")
	flags.BoolVar(&f.writeCache, "write-cache", false, "Only refresh the artifact cache from the environment")
	flags.StringVar(&f.manifest, "manifest", "", "Install manifest to use instead of the built-in one")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Show the output of every external tool")
	flags.StringVarP(&f.outputMode, "output-mode", "o", "auto", "Output mode: auto, interactive, or linear")
}

// options returns the install options selected by the flags.
func (f *installFlags) options() domain.InstallOptions {
	opts := domain.DefaultInstallOptions()
	opts.VenvName = f.venvName
	opts.PackageManager = !f.noPackageManager
	opts.Sudo = f.sudo
	opts.Developer = f.developer
	opts.Addons = slices.Clone(f.addons)
	opts.DisableSSH = f.disableSSH
	opts.MinimalPETSc = f.minimalPETSc
	opts.HonourPETScDir = f.honourPETScDir
	opts.ManifestPath = f.manifest
	opts.Rebuild = f.rebuild
	opts.Clean = f.clean
	opts.WriteCacheOnly = f.writeCache
	opts.Verbose = f.verbose
	return opts
}

// overrides returns adjustments for the flags set explicitly on the command
// line. Per-run flags always apply; add-ons are added to the saved ones.
func (f *installFlags) overrides(cmd *cobra.Command) []app.Override {
	changed := cmd.Flags().Changed
	var out []app.Override

	toggle := func(name string, apply func(*domain.InstallOptions)) {
		if changed(name) {
			out = append(out, apply)
		}
	}
	toggle("no-package-manager", func(o *domain.InstallOptions) { o.PackageManager = !f.noPackageManager })
	toggle("sudo", func(o *domain.InstallOptions) { o.Sudo = f.sudo })
	toggle("developer", func(o *domain.InstallOptions) { o.Developer = f.developer })
	toggle("disable-ssh", func(o *domain.InstallOptions) { o.DisableSSH = f.disableSSH })
	toggle("minimal-petsc", func(o *domain.InstallOptions) { o.MinimalPETSc = f.minimalPETSc })
	toggle("honour-petsc-dir", func(o *domain.InstallOptions) { o.HonourPETScDir = f.honourPETScDir })
	toggle("manifest", func(o *domain.InstallOptions) { o.ManifestPath = f.manifest })
	toggle("install", func(o *domain.InstallOptions) {
		for _, a := range f.addons {
			if !slices.Contains(o.Addons, a) {
				o.Addons = append(o.Addons, a)
			}
		}
	})

	out = append(out, func(o *domain.InstallOptions) {
		o.Rebuild = f.rebuild
		o.Clean = f.clean
		o.WriteCacheOnly = f.writeCache
		o.Verbose = f.verbose
	})
	return out
}

func (f *installFlags) runOptions() app.RunOptions {
	return app.RunOptions{OutputMode: f.outputMode}
}
