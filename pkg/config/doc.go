/*
Package config builds the settings for one csvcol run.

	+--------------------+      +---------------------+
	| positional args    |      | optional --config   |
	| in col value out   |      | .hcl / .yaml / .json|
	+---------+----------+      +----------+----------+
	          |                            |
	          +------------+---------------+
	                       |
	                 +-----+-----+
	                 |  Config   |
	                 +-----------+

🎯 Purpose:
- Turns the four positional arguments into a Config
- Adds extra column replacements and strict header mode from a file
- Validates the merged result

📝 Example HCL:

	strict_header = true

	replacement "Country" {
	  value = "UK"
	}

	replacement "Owner" {
	  value = env.USER
	}

📝 Example YAML:

	strict_header: true
	replacements:
	  - column: Country
	    value: UK
*/
package config
