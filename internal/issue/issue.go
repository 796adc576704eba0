// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	DistDirNotFoundId Id = iota + 1
	PluginNotFoundId
	DescriptorErrorId
	MaterializationFailedId
	ActiveSetWriteFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type Issue struct {
	id    Id          // ID used to look up the issue
	mdMsg MarkdownMsg // Markdown text that will be rendered
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	distDirNotFoundIssue = &Issue{
		id: DistDirNotFoundId,
		mdMsg: `
# Plugin directory not found!

The distribution directory with your plugin archives could not be read.

## Things you can try:
- Check the 'dist_dir' setting in your config:
~~~
$ plugman config show
~~~
- Point plugman at the right directory:
~~~
$ plugman list --dist-dir /path/to/plugins
~~~`,
	}

	pluginNotFoundIssue = &Issue{
		id: PluginNotFoundId,
		mdMsg: `
# Plugin not found!

One or more requested plugins are not present in the distribution directory.

## Things you can try:
- List what is actually available:
~~~
$ plugman list
~~~
- Check the spelling of the plugin name
- Drop the missing archive into the distribution directory and retry`,
	}

	descriptorErrorIssue = &Issue{
		id: DescriptorErrorId,
		mdMsg: `
# Unreadable plugin archive!

An archive in the distribution directory has no usable descriptor. The scan
continued without it.

## Things you can try:
- Check that the archive is a valid ZIP container with an ebin/*.app entry
- Re-download or rebuild the archive
- Remove the file if it is not a plugin`,
	}

	materializationFailedIssue = &Issue{
		id: MaterializationFailedId,
		mdMsg: `
# Could not copy plugin into the active directory!

Enabling was aborted. Archives copied before the failure were left in place;
the enabled-plugin list was NOT updated.

## Things you can try:
- Check free disk space and permissions on the active directory
- Re-run the enable command once the underlying problem is fixed`,
	}

	activeSetWriteFailedIssue = &Issue{
		id: ActiveSetWriteFailedId,
		mdMsg: `
# Could not persist the enabled-plugin list!

The plugin archives were copied, but writing the enabled-plugin list failed.
The active directory and the persisted list may now disagree.

## Things you can try:
- Check permissions on the enabled-plugins file
- Re-run the enable command; enabling is idempotent`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded!

plugman fell back to built-in defaults.

## Things you can try:
- Validate your config file syntax (CUE format)
- Show the effective configuration:
~~~
$ plugman config show
~~~`,
	}

	issues = map[Id]*Issue{
		distDirNotFoundIssue.Id():       distDirNotFoundIssue,
		pluginNotFoundIssue.Id():        pluginNotFoundIssue,
		descriptorErrorIssue.Id():       descriptorErrorIssue,
		materializationFailedIssue.Id(): materializationFailedIssue,
		activeSetWriteFailedIssue.Id():  activeSetWriteFailedIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
	}
)

func Values() []*Issue {
	vals := maps.Values(issues)
	slices.SortFunc(vals, func(a, b *Issue) int { return int(a.Id()) - int(b.Id()) })
	return vals
}

func Get(id Id) *Issue {
	return issues[id]
}
