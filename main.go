// Command bizmargin evaluates a small business's expenses and income and
// explains what the resulting profit margin means.
package main

func main() {
	Execute()
}
